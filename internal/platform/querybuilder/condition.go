package querybuilder

import (
	"strings"

	"github.com/lib/pq"
)

type Condition interface {
	render(buf *strings.Builder, a *args)
}

type conditionFunc func(buf *strings.Builder, a *args)

func (f conditionFunc) render(buf *strings.Builder, a *args) {
	f(buf, a)
}

func Eq(column string, value any) Condition {
	return compare(column, "=", value)
}

func NotEq(column string, value any) Condition {
	return compare(column, "<>", value)
}

func Lt(column string, value any) Condition {
	return compare(column, "<", value)
}

func Gt(column string, value any) Condition {
	return compare(column, ">", value)
}

func compare(column, op string, value any) Condition {
	return conditionFunc(func(buf *strings.Builder, a *args) {
		buf.WriteString(column)
		buf.WriteString(" " + op + " ")
		buf.WriteString(a.bind(value))
	})
}

// AnyText matches column against a text array bound as a single parameter.
// An empty list matches nothing.
func AnyText(column string, values []string) Condition {
	return conditionFunc(func(buf *strings.Builder, a *args) {
		if len(values) == 0 {
			buf.WriteString("1=0")
			return
		}
		buf.WriteString(column)
		buf.WriteString(" = ANY(")
		buf.WriteString(a.bind(pq.Array(values)))
		buf.WriteString(")")
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(buf *strings.Builder, _ *args) {
		buf.WriteString(column + " IS NULL")
	})
}

// Expr embeds raw SQL; each ? is bound to the next value.
func Expr(expr string, values ...any) Condition {
	return conditionFunc(func(buf *strings.Builder, a *args) {
		buf.WriteString(a.expand(expr, values))
	})
}

func renderWhere(buf *strings.Builder, conditions []Condition, a *args) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		c.render(buf, a)
	}
}
