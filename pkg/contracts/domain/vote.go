package domain

// Canonical column names shared by every normalized vote table
const (
	ColumnNeighborhood     = "neighborhood"
	ColumnCandidate        = "candidate"
	ColumnVotesAbsolute    = "votes_absolute"
	ColumnVoteSharePercent = "vote_share_percent"
)

// VoteRecord is one row of the long-form combined table.
// A nil VotesAbsolute or VoteSharePercent means the candidate's source has no
// data for the neighborhood (or the candidate's total is zero); it is never
// the same thing as zero votes.
type VoteRecord struct {
	Neighborhood     string   `json:"neighborhood" validate:"required"`
	Candidate        string   `json:"candidate" validate:"required"`
	VotesAbsolute    *int64   `json:"votes_absolute"`
	VoteSharePercent *float64 `json:"vote_share_percent"`
}

// HasData reports whether the record carries a vote count
func (r VoteRecord) HasData() bool {
	return r.VotesAbsolute != nil
}

// Candidate is the display identity of one vote source
type Candidate struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
}

// NeighborhoodDomain is the sorted, deduplicated set of neighborhood keys
// seen across every candidate source. Its order is the chart's x-axis order.
type NeighborhoodDomain []string

// Contains reports whether key is part of the domain
func (d NeighborhoodDomain) Contains(key string) bool {
	for _, k := range d {
		if k == key {
			return true
		}
	}
	return false
}
