// Package columnar implements the read-only, scan-oriented alternate sheet
// layout: one typed map per column instead of a grid of blocks. It is built
// by the package reader when a sheet is opened for read-only, scan-heavy
// use; mutation is intentionally unsupported.
package columnar

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// sortedKeys returns a map's keys in ascending order, used throughout this
// package so column/row enumeration is deterministic for callers that scan
// a whole sheet.
func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Column holds one worksheet column's values split by type, each keyed by
// row number.
type Column struct {
	Numbers       map[uint32]float64
	SharedStrings map[uint32]uint32
	Bools         map[uint32]bool
	Strings       map[uint32]string // inline strings and error text
}

func newColumn() *Column {
	return &Column{
		Numbers:       map[uint32]float64{},
		SharedStrings: map[uint32]uint32{},
		Bools:         map[uint32]bool{},
		Strings:       map[uint32]string{},
	}
}

// Store is the columnar, read-only sheet representation.
type Store struct {
	columns map[uint32]*Column
}

// NewStore returns an empty columnar store.
func NewStore() *Store {
	return &Store{columns: map[uint32]*Column{}}
}

func (s *Store) column(col uint32) *Column {
	c, ok := s.columns[col]
	if !ok {
		c = newColumn()
		s.columns[col] = c
	}
	return c
}

// PutNumber records a numeric value at (row, col).
func (s *Store) PutNumber(row, col uint32, v float64) {
	s.column(col).Numbers[row] = v
}

// PutSharedString records a shared-string reference at (row, col).
func (s *Store) PutSharedString(row, col uint32, id uint32) {
	s.column(col).SharedStrings[row] = id
}

// PutBool records a boolean value at (row, col).
func (s *Store) PutBool(row, col uint32, v bool) {
	s.column(col).Bools[row] = v
}

// PutString records an inline string or error text at (row, col).
func (s *Store) PutString(row, col uint32, v string) {
	s.column(col).Strings[row] = v
}

// Number returns the numeric value at (row, col), if any.
func (s *Store) Number(row, col uint32) (float64, bool) {
	c, ok := s.columns[col]
	if !ok {
		return 0, false
	}
	v, ok := c.Numbers[row]
	return v, ok
}

// SharedString returns the shared-string id at (row, col), if any.
func (s *Store) SharedString(row, col uint32) (uint32, bool) {
	c, ok := s.columns[col]
	if !ok {
		return 0, false
	}
	v, ok := c.SharedStrings[row]
	return v, ok
}

// Bool returns the boolean value at (row, col), if any.
func (s *Store) Bool(row, col uint32) (bool, bool) {
	c, ok := s.columns[col]
	if !ok {
		return false, false
	}
	v, ok := c.Bools[row]
	return v, ok
}

// String returns the inline string/error text at (row, col), if any.
func (s *Store) String(row, col uint32) (string, bool) {
	c, ok := s.columns[col]
	if !ok {
		return "", false
	}
	v, ok := c.Strings[row]
	return v, ok
}

// Columns returns the column indices with at least one value, in
// ascending order.
func (s *Store) Columns() []uint32 {
	return sortedKeys(s.columns)
}

// Rows returns the row indices that hold a value in the given column, in
// ascending order, scanning across every typed map in that column.
func (s *Store) Rows(col uint32) []uint32 {
	c, ok := s.columns[col]
	if !ok {
		return nil
	}
	seen := map[uint32]struct{}{}
	for _, r := range sortedKeys(c.Numbers) {
		seen[r] = struct{}{}
	}
	for _, r := range sortedKeys(c.SharedStrings) {
		seen[r] = struct{}{}
	}
	for _, r := range sortedKeys(c.Bools) {
		seen[r] = struct{}{}
	}
	for _, r := range sortedKeys(c.Strings) {
		seen[r] = struct{}{}
	}
	return sortedKeys(seen)
}
