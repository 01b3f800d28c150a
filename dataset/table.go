package dataset

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Key identifies a row: the piece it belongs to and its time offset
type Key struct {
	Piece string
	Time  time.Duration
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.Piece, k.Time)
}

// ChromaColumns are the names of the 12 pitch class columns, C to B
var ChromaColumns = []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10", "c11", "c12"}

// Table is a column oriented numeric table whose rows are keyed by
// (piece, time). Row order is preserved by every operation, so frames of a
// piece stay in temporal order.
type Table struct {
	keys    []Key
	columns []string
	index   map[string]int
	data    [][]float64 // data[column][row]
}

// New creates an empty table with the given columns
func New(columns ...string) (*Table, error) {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
		data:    make([][]float64, 0, len(columns)),
	}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
		t.data = append(t.data, nil)
	}
	return t, nil
}

// MustNew is like New but panics on duplicate column names
func MustNew(columns ...string) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromKeys creates a table with the given rows and no columns yet, ready
// for SetColumn
func FromKeys(keys []Key) *Table {
	t := MustNew()
	t.keys = slices.Clone(keys)
	return t
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.keys)
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether the table has a column called name
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Key returns the key of row i
func (t *Table) Key(i int) Key {
	return t.keys[i]
}

// Keys returns the row keys in order
func (t *Table) Keys() []Key {
	return slices.Clone(t.keys)
}

// AppendRow adds a row; values must follow the column order
func (t *Table) AppendRow(key Key, values []float64) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: row %s has %d values, table has %d columns",
			ErrShapeMismatch, key, len(values), len(t.columns))
	}
	t.keys = append(t.keys, key)
	for c, v := range values {
		t.data[c] = append(t.data[c], v)
	}
	return nil
}

// Column returns a copy of the named column
func (t *Table) Column(name string) ([]float64, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return slices.Clone(t.data[c]), nil
}

// Value returns the cell at row i of the named column
func (t *Table) Value(i int, name string) (float64, error) {
	c, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return t.data[c][i], nil
}

// Row returns all values of row i in column order
func (t *Table) Row(i int) []float64 {
	row := make([]float64, len(t.columns))
	for c := range t.columns {
		row[c] = t.data[c][i]
	}
	return row
}

// Rows extracts the given columns as a row-major matrix
func (t *Table) Rows(columns []string) ([][]float64, error) {
	if err := t.Require(columns...); err != nil {
		return nil, err
	}

	idx := make([]int, len(columns))
	for j, name := range columns {
		idx[j] = t.index[name]
	}

	rows := make([][]float64, len(t.keys))
	for i := range rows {
		row := make([]float64, len(idx))
		for j, c := range idx {
			row[j] = t.data[c][i]
		}
		rows[i] = row
	}
	return rows, nil
}

// Require returns ErrMissingColumn naming the first absent column
func (t *Table) Require(columns ...string) error {
	for _, name := range columns {
		if !t.HasColumn(name) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return nil
}

// SetColumn adds the column, or replaces it if it already exists
func (t *Table) SetColumn(name string, values []float64) error {
	if len(values) != len(t.keys) {
		return fmt.Errorf("%w: column %q has %d values, table has %d rows",
			ErrShapeMismatch, name, len(values), len(t.keys))
	}
	if c, ok := t.index[name]; ok {
		t.data[c] = slices.Clone(values)
		return nil
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	t.data = append(t.data, slices.Clone(values))
	return nil
}

// Copy returns a deep copy of the table
func (t *Table) Copy() *Table {
	out := &Table{
		keys:    slices.Clone(t.keys),
		columns: slices.Clone(t.columns),
		index:   make(map[string]int, len(t.index)),
		data:    make([][]float64, len(t.data)),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	for c := range t.data {
		out.data[c] = slices.Clone(t.data[c])
	}
	return out
}

// Select returns a table holding only the given columns, in that order
func (t *Table) Select(columns []string) (*Table, error) {
	if err := t.Require(columns...); err != nil {
		return nil, err
	}
	out, err := New(columns...)
	if err != nil {
		return nil, err
	}
	out.keys = slices.Clone(t.keys)
	for j, name := range columns {
		out.data[j] = slices.Clone(t.data[t.index[name]])
	}
	return out, nil
}

// Drop returns a table without the given columns
func (t *Table) Drop(columns []string) (*Table, error) {
	if err := t.Require(columns...); err != nil {
		return nil, err
	}
	keep := make([]string, 0, len(t.columns))
	for _, name := range t.columns {
		if !slices.Contains(columns, name) {
			keep = append(keep, name)
		}
	}
	return t.Select(keep)
}

// Subset returns the given rows, in the given order
func (t *Table) Subset(rows []int) *Table {
	out := MustNew(t.columns...)
	out.keys = make([]Key, len(rows))
	for c := range out.data {
		out.data[c] = make([]float64, len(rows))
	}
	for i, r := range rows {
		out.keys[i] = t.keys[r]
		for c := range t.data {
			out.data[c][i] = t.data[c][r]
		}
	}
	return out
}

// WithSuffix returns a copy whose column names all carry suffix
func (t *Table) WithSuffix(suffix string) *Table {
	out := t.Copy()
	out.index = make(map[string]int, len(out.columns))
	for c, name := range out.columns {
		out.columns[c] = name + suffix
		out.index[out.columns[c]] = c
	}
	return out
}

// UniqueKeys returns ErrDuplicateKey if any (piece, time) pair repeats
func (t *Table) UniqueKeys() error {
	seen := make(map[Key]struct{}, len(t.keys))
	for _, k := range t.keys {
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// DefaultSuffix disambiguates joined columns whose name is already taken
const DefaultSuffix = "_"

// Join left-joins other onto t by key. Every row of t is kept; columns of
// other are appended, renamed with suffix (repeatedly) while their name is
// already taken. Rows of t with no match get NaN.
func (t *Table) Join(other *Table, suffix string) *Table {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	out := t.Copy()

	lookup := make(map[Key]int, other.Len())
	for i, k := range other.keys {
		if _, ok := lookup[k]; !ok {
			lookup[k] = i
		}
	}

	for c, name := range other.columns {
		for out.HasColumn(name) {
			name += suffix
		}
		values := make([]float64, len(out.keys))
		for i, k := range out.keys {
			if r, ok := lookup[k]; ok {
				values[i] = other.data[c][r]
			} else {
				values[i] = math.NaN()
			}
		}
		out.index[name] = len(out.columns)
		out.columns = append(out.columns, name)
		out.data = append(out.data, values)
	}
	return out
}

// Concat stacks tables with identical columns
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return MustNew(), nil
	}

	out := tables[0].Copy()
	for _, t := range tables[1:] {
		if !slices.Equal(out.columns, t.columns) {
			return nil, fmt.Errorf("%w: %v vs %v", ErrColumnMismatch, out.columns, t.columns)
		}
		out.keys = append(out.keys, t.keys...)
		for c := range out.data {
			out.data[c] = append(out.data[c], t.data[c]...)
		}
	}
	return out, nil
}
