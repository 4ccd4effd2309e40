// Package table holds the in-memory tables cldflex assembles and serializes
// them to CSV. Columns keep their insertion order so that output is stable
// across runs.
package table

import (
	"sort"
	"strings"
)

// Row maps column names to cell values.
type Row map[string]string

// Table is a named, column-ordered list of rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row

	index map[string]int
}

// New creates an empty table with the given leading columns.
func New(name string, columns ...string) *Table {
	t := &Table{Name: name, index: map[string]int{}}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// AddColumn appends a column if it is not present yet.
func (t *Table) AddColumn(name string) {
	if t.index == nil {
		t.index = map[string]int{}
		for i, c := range t.Columns {
			t.index[c] = i
		}
	}
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.Columns)
	t.Columns = append(t.Columns, name)
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row. Keys that are not yet columns are added in sorted order,
// so the resulting column order does not depend on map iteration.
func (t *Table) Append(r Row) {
	var extra []string
	for k := range r {
		if !t.HasColumn(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		t.AddColumn(k)
	}
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the values of one column in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[name]
	}
	return out
}

// Rename renames a column in the header and in every row.
func (t *Table) Rename(from, to string) {
	if from == to || !t.HasColumn(from) {
		return
	}
	if t.HasColumn(to) {
		t.Drop(to)
	}
	for i, c := range t.Columns {
		if c == from {
			t.Columns[i] = to
		}
	}
	t.reindex()
	for _, r := range t.Rows {
		if v, ok := r[from]; ok {
			r[to] = v
			delete(r, from)
		}
	}
}

// Drop removes columns from the header and every row.
func (t *Table) Drop(names ...string) {
	drop := map[string]bool{}
	for _, n := range names {
		drop[n] = true
	}
	cols := t.Columns[:0]
	for _, c := range t.Columns {
		if !drop[c] {
			cols = append(cols, c)
		}
	}
	t.Columns = cols
	t.reindex()
	for _, r := range t.Rows {
		for n := range drop {
			delete(r, n)
		}
	}
}

// Set assigns value to column for every row, adding the column if needed.
func (t *Table) Set(column, value string) {
	t.AddColumn(column)
	for _, r := range t.Rows {
		r[column] = value
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.Name, t.Columns...)
	c.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		cr := make(Row, len(r))
		for k, v := range r {
			cr[k] = v
		}
		c.Rows[i] = cr
	}
	return c
}

// Split returns the multi-valued cell of a row split at sep. An empty cell
// yields no values.
func Split(cell, sep string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, sep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c] = i
	}
}

// Set is an ordered collection of tables.
type Set struct {
	tables []*Table
}

// Add appends a table, replacing an existing table of the same name in place.
func (s *Set) Add(t *Table) {
	for i, x := range s.tables {
		if x.Name == t.Name {
			s.tables[i] = t
			return
		}
	}
	s.tables = append(s.tables, t)
}

// Get returns the named table or nil.
func (s *Set) Get(name string) *Table {
	for _, t := range s.tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Remove deletes the named table from the set.
func (s *Set) Remove(name string) {
	for i, t := range s.tables {
		if t.Name == name {
			s.tables = append(s.tables[:i], s.tables[i+1:]...)
			return
		}
	}
}

// Tables returns the tables in insertion order.
func (s *Set) Tables() []*Table {
	return s.tables
}
