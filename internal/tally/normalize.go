package tally

import (
	"fmt"

	"votecompare/pkg/contracts/domain"
)

// NormalizePercentages renames rawColumn to votes_absolute and appends
// vote_share_percent = 100 * votes / total, where total is the sum of the
// non-null counts in this table. A zero total leaves every share null.
func NormalizePercentages(t *Table, rawColumn string) (*Table, error) {
	out := t.Clone()

	counts, err := countColumn(out, rawColumn)
	if err != nil {
		return nil, err
	}
	if err := out.setColumn(rawColumn, counts); err != nil {
		return nil, err
	}
	if err := out.renameColumn(rawColumn, domain.ColumnVotesAbsolute); err != nil {
		return nil, err
	}

	var total float64
	for _, c := range counts {
		if f, ok := c.Float(); ok {
			total += f
		}
	}

	shares := make([]Value, len(counts))
	for i, c := range counts {
		f, ok := c.Float()
		if !ok || total == 0 {
			shares[i] = Null()
			continue
		}
		shares[i] = Number(100 * f / total)
	}

	if err := out.setColumn(domain.ColumnVoteSharePercent, shares); err != nil {
		return nil, err
	}
	return out, nil
}

// countColumn returns the named column coerced to vote counts
func countColumn(t *Table, column string) ([]Value, error) {
	cells, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(cells))
	for i, cell := range cells {
		v, ok := parseCount(cell)
		if !ok {
			return nil, fmt.Errorf("%w: column %q row %d: %q is not a non-negative whole number",
				ErrMalformedSource, column, i+1, cell.String())
		}
		out[i] = v
	}
	return out, nil
}
