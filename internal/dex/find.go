package dex

import (
	"fmt"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// Filter selects rows by column. A plain value matches by equality; a NotIn
// value matches rows whose column is none of the listed values.
type Filter map[string]any

// NotIn excludes rows whose column equals any of the values.
type NotIn []any

// Find returns every row of table matching filter. Rows are shared with the
// store and must not be modified.
func (s *Store) Find(table string, filter Filter) ([]map[string]any, error) {
	rows, ok := s.rows[table]
	if !ok {
		return nil, errors.NotFoundf("unknown table %q", table)
	}

	var results []map[string]any
	for _, row := range rows {
		if matches(row, filter) {
			results = append(results, row)
		}
	}
	return results, nil
}

// FindOne returns the first row of table matching filter.
func (s *Store) FindOne(table string, filter Filter) (map[string]any, error) {
	results, err := s.Find(table, filter)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.NotFoundf("no %s row matches", table)
	}
	return results[0], nil
}

func matches(row map[string]any, filter Filter) bool {
	for column, want := range filter {
		got := row[column]
		switch w := want.(type) {
		case NotIn:
			for _, v := range w {
				if same(got, v) {
					return false
				}
			}
		default:
			if !same(got, w) {
				return false
			}
		}
	}
	return true
}

// same compares a decoded JSON value with a Go literal. JSON numbers decode
// as float64, so both sides are compared in their printed form.
func same(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}
