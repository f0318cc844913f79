package tally

import (
	"fmt"
	"sort"

	"votecompare/pkg/contracts/domain"
)

// CandidateTable is one candidate's normalized table. The candidate is carried
// alongside the table rather than as a column so that gap rows added by
// Reconcile keep their identity.
type CandidateTable struct {
	Candidate string
	Table     *Table
}

// Domain returns the sorted union of neighborhood keys across all tables
func Domain(tables []CandidateTable) (domain.NeighborhoodDomain, error) {
	seen := make(map[string]struct{})
	for _, ct := range tables {
		keys, err := ct.Table.Column(domain.ColumnNeighborhood)
		if err != nil {
			return nil, fmt.Errorf("candidate %q: %w", ct.Candidate, err)
		}
		for _, k := range keys {
			if s := k.String(); s != "" {
				seen[s] = struct{}{}
			}
		}
	}

	out := make(domain.NeighborhoodDomain, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// Reconcile left-joins every table onto the neighborhood domain. Each
// returned table has exactly one row per domain key, in domain order, with
// null cells where the candidate's source has no row for that key.
func Reconcile(tables []CandidateTable) (domain.NeighborhoodDomain, []CandidateTable, error) {
	dom, err := Domain(tables)
	if err != nil {
		return nil, nil, err
	}

	out := make([]CandidateTable, len(tables))
	for i, ct := range tables {
		joined, err := leftJoin(dom, ct.Table)
		if err != nil {
			return nil, nil, fmt.Errorf("candidate %q: %w", ct.Candidate, err)
		}
		out[i] = CandidateTable{Candidate: ct.Candidate, Table: joined}
	}
	return dom, out, nil
}

func leftJoin(dom domain.NeighborhoodDomain, t *Table) (*Table, error) {
	keyIdx := t.Index(domain.ColumnNeighborhood)
	if keyIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, domain.ColumnNeighborhood)
	}

	byKey := make(map[string]int, t.Len())
	for i, row := range t.rows {
		k := row[keyIdx].String()
		if k == "" {
			if !t.Value(i, domain.ColumnVotesAbsolute).IsNull() {
				return nil, fmt.Errorf("%w: row %d has votes but no neighborhood", ErrMalformedSource, i+1)
			}
			continue
		}
		if _, dup := byKey[k]; dup {
			return nil, fmt.Errorf("%w: neighborhood %q appears more than once", ErrDuplicateKey, k)
		}
		byKey[k] = i
	}

	out := NewTable(t.columns...)
	for _, k := range dom {
		var row []Value
		if i, ok := byKey[k]; ok {
			row = t.Row(i)
		} else {
			row = make([]Value, len(t.columns))
		}
		row[keyIdx] = Text(k)
		if err := out.AddRow(row...); err != nil {
			return nil, err
		}
	}
	return out, nil
}
