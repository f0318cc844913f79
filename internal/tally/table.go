package tally

import (
	"fmt"
)

// Table is an ordered set of named columns with rows of cells.
// Operations in this package never modify their input table.
type Table struct {
	columns []string
	rows    [][]Value
}

// NewTable creates an empty table with the given columns
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}
}

// Columns returns a copy of the column names
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Index returns the position of a column or -1
func (t *Table) Index(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table carries the named column
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// AddRow appends a row. The number of values must match the number of columns.
func (t *Table) AddRow(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a copy of row i
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// Value returns the cell at row i of the named column; unknown columns read as null
func (t *Table) Value(i int, column string) Value {
	idx := t.Index(column)
	if idx < 0 {
		return Null()
	}
	return t.rows[i][idx]
}

// Column returns a copy of every cell in the named column
func (t *Table) Column(name string) ([]Value, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	c := NewTable(t.columns...)
	c.rows = make([][]Value, len(t.rows))
	for i := range t.rows {
		c.rows[i] = t.Row(i)
	}
	return c
}

// renameColumn renames a column in place
func (t *Table) renameColumn(from, to string) error {
	idx := t.Index(from)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrMissingColumn, from)
	}
	if from != to && t.Has(to) {
		return fmt.Errorf("%w: %q already present", ErrAmbiguousColumn, to)
	}
	t.columns[idx] = to
	return nil
}

// setColumn replaces the named column's cells, appending the column when absent
func (t *Table) setColumn(name string, values []Value) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}
	idx := t.Index(name)
	if idx < 0 {
		t.columns = append(t.columns, name)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], values[i])
		}
		return nil
	}
	for i := range t.rows {
		t.rows[i][idx] = values[i]
	}
	return nil
}

// Equal reports whether two tables have the same columns and cells
func (t *Table) Equal(o *Table) bool {
	if len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != o.columns[i] {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if t.rows[i][j] != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}
