package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votecompare/pkg/contracts/domain"
)

func TestCombine_Scenario(t *testing.T) {
	tables := []CandidateTable{
		normalized(t, "A", []string{"X", "10"}, []string{"Y", "30"}),
		normalized(t, "B", []string{"Y", "20"}, []string{"Z", "20"}),
	}
	dom, reconciled, err := Reconcile(tables)
	require.NoError(t, err)
	require.Equal(t, domain.NeighborhoodDomain{"X", "Y", "Z"}, dom)

	records, err := Combine(reconciled)
	require.NoError(t, err)
	require.Len(t, records, 6)

	byPair := make(map[[2]string]domain.VoteRecord)
	for _, r := range records {
		byPair[[2]string{r.Neighborhood, r.Candidate}] = r
	}
	assert.Len(t, byPair, 6, "pairs must be unique")

	ax := byPair[[2]string{"X", "A"}]
	require.NotNil(t, ax.VoteSharePercent)
	assert.InDelta(t, 25.0, *ax.VoteSharePercent, 1e-9)
	assert.Equal(t, int64(10), *ax.VotesAbsolute)

	ay := byPair[[2]string{"Y", "A"}]
	require.NotNil(t, ay.VoteSharePercent)
	assert.InDelta(t, 75.0, *ay.VoteSharePercent, 1e-9)

	az := byPair[[2]string{"Z", "A"}]
	assert.Equal(t, "A", az.Candidate)
	assert.Nil(t, az.VotesAbsolute)
	assert.Nil(t, az.VoteSharePercent)
	assert.False(t, az.HasData())

	bx := byPair[[2]string{"X", "B"}]
	assert.Nil(t, bx.VotesAbsolute)
	bz := byPair[[2]string{"Z", "B"}]
	require.NotNil(t, bz.VoteSharePercent)
	assert.InDelta(t, 50.0, *bz.VoteSharePercent, 1e-9)
}

func TestCombine_RowCount(t *testing.T) {
	tables := []CandidateTable{
		normalized(t, "A", []string{"P", "1"}, []string{"Q", "2"}),
		normalized(t, "B", []string{"Q", "2"}, []string{"R", "3"}, []string{"S", "4"}),
		normalized(t, "C", []string{"T", "5"}),
	}
	dom, reconciled, err := Reconcile(tables)
	require.NoError(t, err)

	records, err := Combine(reconciled)
	require.NoError(t, err)
	assert.Len(t, records, 3*len(dom))

	// order: candidate in input order, then domain order
	assert.Equal(t, "A", records[0].Candidate)
	assert.Equal(t, "P", records[0].Neighborhood)
	assert.Equal(t, "C", records[len(records)-1].Candidate)
	assert.Equal(t, "T", records[len(records)-1].Neighborhood)
}

func TestCombine_DuplicateCandidate(t *testing.T) {
	a := normalized(t, "A", []string{"X", "1"})
	_, err := Combine([]CandidateTable{a, a})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCombine_MissingColumn(t *testing.T) {
	raw := textTable(t, []string{"neighborhood", "v"}, []string{"X", "1"})
	_, err := Combine([]CandidateTable{{Candidate: "A", Table: raw}})
	assert.ErrorIs(t, err, ErrMissingColumn)
}
