package tally

import (
	"fmt"
	"strings"
)

// UnifySchema renames the first alias present in t to canonical.
// A table that already uses canonical is returned as an unchanged copy, so
// applying UnifySchema twice is the same as applying it once.
func UnifySchema(t *Table, canonical string, aliases ...string) (*Table, error) {
	var found []string
	if t.Has(canonical) {
		found = append(found, canonical)
	}
	for _, alias := range aliases {
		if alias == canonical || !t.Has(alias) || contains(found, alias) {
			continue
		}
		found = append(found, alias)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: none of %q present (columns: %s)",
			ErrMissingColumn, append([]string{canonical}, aliases...), strings.Join(t.columns, ", "))
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s all map to %q", ErrAmbiguousColumn, strings.Join(found, ", "), canonical)
	}

	out := t.Clone()
	if found[0] == canonical {
		return out, nil
	}
	if err := out.renameColumn(found[0], canonical); err != nil {
		return nil, err
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
