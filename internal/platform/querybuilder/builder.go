package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissingTable   = errors.New("table is required")
	ErrMissingColumns = errors.New("columns are required")
	ErrMissingValues  = errors.New("values are required")
	ErrUnboundedWrite = errors.New("update and delete require a where clause")
)

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select: %w", ErrMissingColumns)
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select: %w", ErrMissingTable)
	}

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	renderWhere(&buf, b.where, &a)
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}

	return buf.String(), a.values, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row; call it repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends trailing SQL such as ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert: %w", ErrMissingTable)
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert: %w", ErrMissingColumns)
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert: %w", ErrMissingValues)
	}

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		placeholders := make([]string, len(row))
		for j, value := range row {
			placeholders[j] = a.bind(value)
		}
		buf.WriteString("(" + strings.Join(placeholders, ", ") + ")")
	}
	if b.suffix != "" {
		buf.WriteString(" " + b.suffix)
	}

	return buf.String(), a.values, nil
}

type assignment struct {
	column string
	value  any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("update: %w", ErrMissingTable)
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update: %w", ErrMissingValues)
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("update: %w", ErrUnboundedWrite)
	}

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(set.column + " = " + a.bind(set.value))
	}
	renderWhere(&buf, b.where, &a)

	return buf.String(), a.values, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete: %w", ErrMissingTable)
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete: %w", ErrUnboundedWrite)
	}

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("DELETE FROM " + b.table)
	renderWhere(&buf, b.where, &a)

	return buf.String(), a.values, nil
}
