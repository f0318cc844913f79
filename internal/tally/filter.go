package tally

import "votecompare/pkg/contracts/domain"

// Filter keeps the records whose candidate is selected, preserving order.
// An empty selection yields no records.
func Filter(records []domain.VoteRecord, selected []string) []domain.VoteRecord {
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}

	out := make([]domain.VoteRecord, 0, len(records))
	for _, r := range records {
		if _, ok := want[r.Candidate]; ok {
			out = append(out, r)
		}
	}
	return out
}
