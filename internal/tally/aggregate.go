package tally

import (
	"fmt"
	"sort"
)

// AggregateBy sums value per distinct key and returns a two-column table
// [key, value] sorted by key. Nulls are skipped; a group with no counts at
// all stays null. A row with an empty key is dropped when its count is null
// and is a malformed source otherwise, since its votes belong to no
// neighborhood.
func AggregateBy(t *Table, key, value string) (*Table, error) {
	keys, err := t.Column(key)
	if err != nil {
		return nil, err
	}
	counts, err := countColumn(t, value)
	if err != nil {
		return nil, err
	}

	type group struct {
		sum    float64
		hasSum bool
	}
	groups := make(map[string]*group)
	for i, k := range keys {
		name := k.String()
		if name == "" {
			if !counts[i].IsNull() {
				return nil, fmt.Errorf("%w: row %d: %s is empty but %s holds %s",
					ErrMalformedSource, i+1, key, value, counts[i].String())
			}
			continue
		}
		g, ok := groups[name]
		if !ok {
			g = &group{}
			groups[name] = g
		}
		if f, ok := counts[i].Float(); ok {
			g.sum += f
			g.hasSum = true
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := NewTable(key, value)
	for _, name := range names {
		g := groups[name]
		cell := Null()
		if g.hasSum {
			cell = Number(g.sum)
		}
		if err := out.AddRow(Text(name), cell); err != nil {
			return nil, fmt.Errorf("aggregate %q: %w", name, err)
		}
	}
	return out, nil
}
