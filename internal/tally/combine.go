package tally

import (
	"fmt"

	"votecompare/pkg/contracts/domain"
)

// Combine concatenates reconciled candidate tables into long-form records,
// in table order and then row order. Every (neighborhood, candidate) pair
// must be unique.
func Combine(tables []CandidateTable) ([]domain.VoteRecord, error) {
	size := 0
	for _, ct := range tables {
		size += ct.Table.Len()
	}
	records := make([]domain.VoteRecord, 0, size)

	type pair struct{ neighborhood, candidate string }
	seen := make(map[pair]struct{}, size)
	candidates := make(map[string]struct{}, len(tables))

	for _, ct := range tables {
		if _, dup := candidates[ct.Candidate]; dup {
			return nil, fmt.Errorf("%w: candidate %q listed twice", ErrDuplicateKey, ct.Candidate)
		}
		candidates[ct.Candidate] = struct{}{}

		for _, col := range []string{domain.ColumnNeighborhood, domain.ColumnVotesAbsolute, domain.ColumnVoteSharePercent} {
			if !ct.Table.Has(col) {
				return nil, fmt.Errorf("candidate %q: %w: %q", ct.Candidate, ErrMissingColumn, col)
			}
		}

		for i := 0; i < ct.Table.Len(); i++ {
			rec := domain.VoteRecord{
				Neighborhood:     ct.Table.Value(i, domain.ColumnNeighborhood).String(),
				Candidate:        ct.Candidate,
				VotesAbsolute:    intPtr(ct.Table.Value(i, domain.ColumnVotesAbsolute)),
				VoteSharePercent: floatPtr(ct.Table.Value(i, domain.ColumnVoteSharePercent)),
			}
			p := pair{rec.Neighborhood, rec.Candidate}
			if _, dup := seen[p]; dup {
				return nil, fmt.Errorf("%w: (%q, %q)", ErrDuplicateKey, p.neighborhood, p.candidate)
			}
			seen[p] = struct{}{}
			records = append(records, rec)
		}
	}
	return records, nil
}

func intPtr(v Value) *int64 {
	f, ok := v.Float()
	if !ok {
		return nil
	}
	n := int64(f)
	return &n
}

func floatPtr(v Value) *float64 {
	f, ok := v.Float()
	if !ok {
		return nil
	}
	return &f
}
