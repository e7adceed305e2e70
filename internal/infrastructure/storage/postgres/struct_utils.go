package postgres

import (
	"reflect"
)

// ExtractDBColumns returns the column names from the "db" tags of T in
// field order, descending into embedded structs.
//
// Usage:
//
//	columns := ExtractDBColumns[acquisitionRow]()
//	// Returns: ["id", "budget", "unit", ...]
func ExtractDBColumns[T any]() []string {
	var zero T
	return extractColumnsFromType(reflect.TypeOf(zero))
}

func extractColumnsFromType(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			cols = append(cols, extractColumnsFromType(field.Type)...)
			continue
		}
		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			cols = append(cols, tag)
		}
	}
	return cols
}

// RowValues returns the values of v's "db" tagged fields in the same order
// as ExtractDBColumns, ready for CopyFromSlice.
func RowValues(v any) []any {
	return appendRowValues(nil, reflect.Indirect(reflect.ValueOf(v)))
}

func appendRowValues(out []any, v reflect.Value) []any {
	if v.Kind() != reflect.Struct {
		return out
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			out = appendRowValues(out, reflect.Indirect(v.Field(i)))
			continue
		}
		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			out = append(out, v.Field(i).Interface())
		}
	}
	return out
}
