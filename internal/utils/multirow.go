package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedRowShape is returned when a row's arity disagrees with the
// declared column list. The builder fails before producing any SQL.
var ErrMalformedRowShape = errors.New("row arity does not match column list")

// InsertStatement is a parameterized multi-row INSERT ready for execution.
type InsertStatement struct {
	SQL  string
	Args []interface{}
}

// BuildMultiRowInsert produces a single INSERT statement with one placeholder
// group per row and a row-major flat argument list. Placeholder indices are
// contiguous and 1-based across the whole statement.
//
// columns is the full ordered column list of the target table. leading holds
// values shared by every row (typically the parent id generated earlier in
// the same transaction); they are re-emitted in each group's argument slots
// rather than referenced through one shared placeholder, since the executor
// does not support reusing a placeholder index across groups in the general
// case. Each row must then carry exactly len(columns)-len(leading) values.
//
// A nil or empty rows slice returns (nil, nil): the caller issues no
// statement. Values always travel as bound parameters, never interpolated
// into the SQL text.
func BuildMultiRowInsert(table string, columns []string, leading []interface{}, rows [][]interface{}) (*InsertStatement, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	width := len(columns) - len(leading)
	if width < 1 {
		return nil, ErrMalformedRowShape
	}
	for _, row := range rows {
		if len(row) != width {
			return nil, ErrMalformedRowShape
		}
	}

	var builder strings.Builder
	builder.WriteString("INSERT INTO ")
	builder.WriteString(table)
	builder.WriteString(" (")
	builder.WriteString(strings.Join(columns, ", "))
	builder.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(rows)*len(columns))
	placeholder := 1

	for i, row := range rows {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteByte('(')
		for j := 0; j < len(columns); j++ {
			if j > 0 {
				builder.WriteString(", ")
			}
			builder.WriteByte('$')
			builder.WriteString(strconv.Itoa(placeholder))
			placeholder++
		}
		builder.WriteByte(')')

		args = append(args, leading...)
		args = append(args, row...)
	}

	return &InsertStatement{SQL: builder.String(), Args: args}, nil
}
