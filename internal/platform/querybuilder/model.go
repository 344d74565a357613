package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var ErrInvalidModel = errors.New("model must be a non-nil struct with db tags")

// InsertModels builds one multi-row INSERT from structs tagged with `db`.
// Every model must share the same type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert: %w", ErrMissingValues)
	}

	builder := InsertInto(table).Suffix(suffix)
	for i, model := range models {
		cols, vals, err := columnsAndValues(model)
		if err != nil {
			return "", nil, err
		}
		if i == 0 {
			builder.Columns(cols...)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// Columns lists the db column names of a tagged struct type, in field order.
func Columns(model any) []string {
	cols, _, _ := columnsAndValues(model)
	return cols
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, nil, ErrInvalidModel
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, ErrInvalidModel
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, ErrInvalidModel
	}
	return cols, vals, nil
}
