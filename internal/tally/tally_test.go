package tally

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// textTable builds a table of text cells; "" becomes null
func textTable(t *testing.T, columns []string, rows ...[]string) *Table {
	t.Helper()
	tbl := NewTable(columns...)
	for _, r := range rows {
		vals := make([]Value, len(r))
		for i, s := range r {
			if s == "" {
				vals[i] = Null()
			} else {
				vals[i] = Text(s)
			}
		}
		require.NoError(t, tbl.AddRow(vals...))
	}
	return tbl
}

// normalized builds one candidate's table the way the pipeline does
func normalized(t *testing.T, candidate string, rows ...[]string) CandidateTable {
	t.Helper()
	raw := textTable(t, []string{"Bairro", "Votos"}, rows...)
	unified, err := UnifySchema(raw, "neighborhood", "Bairro", "BAIRRO")
	require.NoError(t, err)
	agg, err := AggregateBy(unified, "neighborhood", "Votos")
	require.NoError(t, err)
	norm, err := NormalizePercentages(agg, "Votos")
	require.NoError(t, err)
	return CandidateTable{Candidate: candidate, Table: norm}
}
