package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/book"
)

func names(records []*book.Record) []book.Name {
	out := make([]book.Name, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}

func TestBook_AddFind(t *testing.T) {
	b := book.New()
	assert.Zero(t, b.Len())

	r, ok := b.Find("Alice")
	assert.False(t, ok)
	assert.Nil(t, r)

	alice := newRecord(t, "Alice", "0123456789")
	assert.False(t, b.AddRecord(alice))

	got, ok := b.Find("Alice")
	require.True(t, ok)
	assert.Same(t, alice, got)
	assert.Equal(t, 1, b.Len())
}

// TestBook_AddRecord_Overwrite documents the last-write-wins policy: the
// second record fully replaces the first (no phone merge) and keeps its slot.
func TestBook_AddRecord_Overwrite(t *testing.T) {
	b := book.New()
	b.AddRecord(newRecord(t, "Alice", "0123456789"))
	b.AddRecord(newRecord(t, "Bob"))

	replaced := b.AddRecord(newRecord(t, "Alice", "1111111111", "2222222222"))
	assert.True(t, replaced)

	got, ok := b.Find("Alice")
	require.True(t, ok)
	assert.Equal(t, []book.Phone{"1111111111", "2222222222"}, got.Phones())
	assert.Equal(t, []book.Name{"Alice", "Bob"}, names(b.Records()))
	assert.Equal(t, 2, b.Len())
}

func TestBook_Delete(t *testing.T) {
	b := book.New()
	b.AddRecord(newRecord(t, "Alice"))
	b.AddRecord(newRecord(t, "Bob"))
	b.AddRecord(newRecord(t, "Carol"))

	require.NoError(t, b.Delete("Bob"))
	assert.Equal(t, []book.Name{"Alice", "Carol"}, names(b.Records()))

	_, ok := b.Find("Bob")
	assert.False(t, ok)
}

func TestBook_Delete_Missing(t *testing.T) {
	b := book.New()
	b.AddRecord(newRecord(t, "Alice"))

	err := b.Delete("Zed")
	assert.ErrorIs(t, err, book.ErrContactNotFound)
	assert.Equal(t, []book.Name{"Alice"}, names(b.Records()), "Key set must be unchanged")
}

func TestBook_Records_InsertionOrder(t *testing.T) {
	b := book.New()
	for _, n := range []string{"Zed", "Amy", "Mia"} {
		b.AddRecord(newRecord(t, n))
	}
	assert.Equal(t, []book.Name{"Zed", "Amy", "Mia"}, names(b.Records()))

	require.NoError(t, b.Delete("Amy"))
	b.AddRecord(newRecord(t, "Amy"))
	assert.Equal(t, []book.Name{"Zed", "Mia", "Amy"}, names(b.Records()), "Re-added contacts go to the end")
}
