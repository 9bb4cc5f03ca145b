// Package book holds the in-memory address book: validated contact records
// and the upcoming birthdays query. It is single-threaded and never logs.
package book

import (
	"fmt"
	"slices"
)

// Book maps contact names to records and remembers insertion order.
// It is not safe for concurrent use.
type Book struct {
	records map[Name]*Record
	order   []Name
}

// New returns an empty Book.
func New() *Book {
	return &Book{records: make(map[Name]*Record)}
}

// AddRecord stores r under its name. An existing entry with the same name is
// replaced (last write wins) and keeps its original position; the result
// reports whether that happened.
func (b *Book) AddRecord(r *Record) bool {
	_, replaced := b.records[r.name]
	if !replaced {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
	return replaced
}

// Find returns the record stored under name.
func (b *Book) Find(name string) (*Record, bool) {
	r, ok := b.records[Name(name)]
	return r, ok
}

// Delete removes the record stored under name.
func (b *Book) Delete(name string) error {
	key := Name(name)
	if _, ok := b.records[key]; !ok {
		return fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	delete(b.records, key)
	b.order = slices.DeleteFunc(b.order, func(n Name) bool { return n == key })
	return nil
}

// Len returns the number of contacts.
func (b *Book) Len() int { return len(b.order) }

// Records returns all records in insertion order.
func (b *Book) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, n := range b.order {
		out = append(out, b.records[n])
	}
	return out
}
