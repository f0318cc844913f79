package exporter

import (
	"fmt"

	"votecompare/pkg/contracts/domain"
)

// Header is the column order of every export
var Header = []string{
	domain.ColumnNeighborhood,
	domain.ColumnCandidate,
	domain.ColumnVotesAbsolute,
	domain.ColumnVoteSharePercent,
}

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

func formatShare(p *float64) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p)
}

func formatVotes(p *int64) string {
	if p == nil {
		return ""
	}
	return formatInt(*p)
}

// recordRow renders one record as CSV fields in Header order
func recordRow(r domain.VoteRecord) []string {
	return []string{r.Neighborhood, r.Candidate, formatVotes(r.VotesAbsolute), formatShare(r.VoteSharePercent)}
}
