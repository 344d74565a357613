package querybuilder

import (
	"strconv"
	"strings"
)

// args collects bind values and hands out matching $n placeholders.
type args struct {
	values []any
}

func (a *args) bind(value any) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// expand replaces each ? in expr with the next placeholder.
func (a *args) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			out.WriteString(a.bind(values[next]))
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}
