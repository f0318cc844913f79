package pipeline

import (
	"time"

	"github.com/google/uuid"

	"votecompare/internal/tally"
	"votecompare/pkg/contracts/domain"
)

// Dataset is the result of one successful load
type Dataset struct {
	ID       uuid.UUID
	LoadedAt time.Time
	// Domain is the shared x-axis: every neighborhood seen in any source
	Domain domain.NeighborhoodDomain
	// Candidates in configuration order
	Candidates []domain.Candidate
	// Records holds len(Candidates) * len(Domain) rows, grouped by candidate
	Records []domain.VoteRecord
}

// Filter returns the records of the selected candidates
func (d *Dataset) Filter(selected []string) []domain.VoteRecord {
	return tally.Filter(d.Records, selected)
}

// Candidate looks up a candidate by name
func (d *Dataset) Candidate(name string) (domain.Candidate, bool) {
	for _, c := range d.Candidates {
		if c.Name == name {
			return c, true
		}
	}
	return domain.Candidate{}, false
}

// CandidateNames returns the candidate names in configuration order
func (d *Dataset) CandidateNames() []string {
	names := make([]string, len(d.Candidates))
	for i, c := range d.Candidates {
		names[i] = c.Name
	}
	return names
}
