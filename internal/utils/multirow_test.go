package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderRegex = regexp.MustCompile(`\$(\d+)`)

func TestBuildMultiRowInsertExample(t *testing.T) {
	statement, err := BuildMultiRowInsert("puesto_riesgos", []string{"puesto_id", "riesgo_id"},
		[]interface{}{int64(7)}, [][]interface{}{{int64(1)}, {int64(2)}})
	require.NoError(t, err)
	require.NotNil(t, statement)

	assert.Equal(t, "INSERT INTO puesto_riesgos (puesto_id, riesgo_id) VALUES ($1, $2), ($3, $4)", statement.SQL)
	// The shared parent id is re-emitted in every group, not referenced by a
	// single shared placeholder.
	assert.Equal(t, []interface{}{int64(7), int64(1), int64(7), int64(2)}, statement.Args)
}

func TestBuildMultiRowInsertPlaceholderContiguity(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for k := 1; k <= 4; k++ {
			t.Run(fmt.Sprintf("rows=%d/arity=%d", n, k), func(t *testing.T) {
				columns := make([]string, k)
				for j := range columns {
					columns[j] = fmt.Sprintf("col_%d", j)
				}

				rows := make([][]interface{}, n)
				for i := range rows {
					row := make([]interface{}, k)
					for j := range row {
						row[j] = fmt.Sprintf("v_%d_%d", i, j)
					}
					rows[i] = row
				}

				statement, err := BuildMultiRowInsert("some_table", columns, nil, rows)
				require.NoError(t, err)
				require.NotNil(t, statement)

				// Placeholder indices must be exactly 1..n*k, strictly
				// increasing, no gaps or collisions.
				matches := placeholderRegex.FindAllStringSubmatch(statement.SQL, -1)
				require.Len(t, matches, n*k)
				for position, match := range matches {
					index, err := strconv.Atoi(match[1])
					require.NoError(t, err)
					assert.Equal(t, position+1, index)
				}

				// The flat argument list is the row-major concatenation of
				// the tuples.
				require.Len(t, statement.Args, n*k)
				for position, arg := range statement.Args {
					i, j := position/k, position%k
					assert.Equal(t, fmt.Sprintf("v_%d_%d", i, j), arg)
				}
			})
		}
	}
}

func TestBuildMultiRowInsertSharedLeading(t *testing.T) {
	leading := []interface{}{int64(42), "nom-017"}
	rows := [][]interface{}{{"P1", "A1"}, {"P2", "A2"}, {"P3", "A3"}}

	statement, err := BuildMultiRowInsert("cuestionarios",
		[]string{"info_id", "nom", "pregunta", "respuesta"}, leading, rows)
	require.NoError(t, err)
	require.NotNil(t, statement)

	assert.Equal(t, "INSERT INTO cuestionarios (info_id, nom, pregunta, respuesta) VALUES "+
		"($1, $2, $3, $4), ($5, $6, $7, $8), ($9, $10, $11, $12)", statement.SQL)
	assert.Equal(t, []interface{}{
		int64(42), "nom-017", "P1", "A1",
		int64(42), "nom-017", "P2", "A2",
		int64(42), "nom-017", "P3", "A3",
	}, statement.Args)
}

func TestBuildMultiRowInsertZeroRows(t *testing.T) {
	statement, err := BuildMultiRowInsert("puesto_epp", []string{"puesto_id", "epp_id"},
		[]interface{}{int64(1)}, nil)
	require.NoError(t, err)
	assert.Nil(t, statement)

	statement, err = BuildMultiRowInsert("puesto_epp", []string{"puesto_id", "epp_id"},
		[]interface{}{int64(1)}, [][]interface{}{})
	require.NoError(t, err)
	assert.Nil(t, statement)
}

func TestBuildMultiRowInsertMalformedRowShape(t *testing.T) {
	// Second row is one value short of the declared arity.
	_, err := BuildMultiRowInsert("cuestionarios", []string{"info_id", "pregunta", "respuesta"},
		[]interface{}{int64(1)}, [][]interface{}{{"P1", "A1"}, {"P2"}})
	assert.ErrorIs(t, err, ErrMalformedRowShape)

	// A row wider than the column list is just as malformed, never truncated.
	_, err = BuildMultiRowInsert("cuestionarios", []string{"info_id", "pregunta"},
		[]interface{}{int64(1)}, [][]interface{}{{"P1", "A1"}})
	assert.ErrorIs(t, err, ErrMalformedRowShape)

	// Leading values may not consume the whole column list.
	_, err = BuildMultiRowInsert("cuestionarios", []string{"info_id"},
		[]interface{}{int64(1), int64(2)}, [][]interface{}{{"P1"}})
	assert.ErrorIs(t, err, ErrMalformedRowShape)
}
