package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// item is a minimal Identifiable for collection tests.
type item struct {
	id    int
	label string
}

func (i item) EntityID() int { return i.id }

// mustAdd builds a collection from items, failing the test on error.
func mustAdd(t *testing.T, c Collection[item], items ...item) Collection[item] {
	t.Helper()
	for _, it := range items {
		var err error
		c, err = c.Add(it)
		require.NoError(t, err)
	}
	return c
}

// requireConsistent asserts the order/byID invariant: same id set, no
// duplicates, lookup succeeds for every ordered id.
func requireConsistent(t *testing.T, c Collection[item]) {
	t.Helper()
	ids := c.IDs()
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		require.False(t, seen[id], "duplicate id %d in order", id)
		seen[id] = true
		_, ok := c.Get(id)
		require.True(t, ok, "ordered id %d missing from index", id)
	}
	require.Equal(t, len(ids), c.Len())
	require.Len(t, c.All(), len(ids))
}

func TestCollection_ZeroValueUsable(t *testing.T) {
	var c Collection[item]

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.All())
	assert.False(t, c.Has(1))

	_, ok := c.Get(1)
	assert.False(t, ok)

	c2, err := c.Add(item{id: 1, label: "first"})
	require.NoError(t, err)
	assert.Equal(t, 1, c2.Len())
}

func TestCollection_AddPreservesInsertionOrder(t *testing.T) {
	c := mustAdd(t, NewCollection[item](),
		item{id: 3, label: "c"},
		item{id: 1, label: "a"},
		item{id: 2, label: "b"},
	)

	assert.Equal(t, []int{3, 1, 2}, c.IDs())

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].label)
	assert.Equal(t, "a", all[1].label)
	assert.Equal(t, "b", all[2].label)

	requireConsistent(t, c)
}

func TestCollection_AddDuplicateFails(t *testing.T) {
	c := mustAdd(t, NewCollection[item](), item{id: 1, label: "a"})

	got, err := c.Add(item{id: 1, label: "again"})
	require.Error(t, err)
	assert.True(t, IsDuplicateID(err))
	assert.False(t, IsNotFound(err))

	// The returned collection is the untouched receiver.
	assert.Equal(t, []int{1}, got.IDs())
	e, ok := got.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", e.label)
}

func TestCollection_Update(t *testing.T) {
	c := mustAdd(t, NewCollection[item](),
		item{id: 1, label: "a"},
		item{id: 2, label: "b"},
	)

	c2, err := c.Update(item{id: 1, label: "a2"})
	require.NoError(t, err)

	e, ok := c2.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a2", e.label)

	// Order unchanged, other entries unchanged.
	assert.Equal(t, []int{1, 2}, c2.IDs())
	e, ok = c2.Get(2)
	require.True(t, ok)
	assert.Equal(t, "b", e.label)

	requireConsistent(t, c2)
}

func TestCollection_UpdateMissingFails(t *testing.T) {
	c := mustAdd(t, NewCollection[item](), item{id: 1, label: "a"})

	_, err := c.Update(item{id: 9, label: "ghost"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "entity 9: not found")
}

func TestCollection_UpdateIsIdempotent(t *testing.T) {
	c := mustAdd(t, NewCollection[item](),
		item{id: 1, label: "a"},
		item{id: 2, label: "b"},
	)

	e := item{id: 2, label: "b2"}
	once, err := c.Update(e)
	require.NoError(t, err)
	twice, err := once.Update(e)
	require.NoError(t, err)

	assert.Equal(t, once.IDs(), twice.IDs())
	assert.Equal(t, once.All(), twice.All())
}

func TestCollection_Remove(t *testing.T) {
	c := mustAdd(t, NewCollection[item](),
		item{id: 1, label: "a"},
		item{id: 2, label: "b"},
		item{id: 3, label: "c"},
	)

	c2, err := c.Remove(2)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, c2.IDs())
	assert.False(t, c2.Has(2))
	requireConsistent(t, c2)
}

func TestCollection_RemoveMissingFails(t *testing.T) {
	c := mustAdd(t, NewCollection[item](), item{id: 1, label: "a"})

	_, err := c.Remove(7)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestCollection_AddRemoveRoundTrip(t *testing.T) {
	base := mustAdd(t, NewCollection[item](),
		item{id: 1, label: "a"},
		item{id: 2, label: "b"},
	)

	added, err := base.Add(item{id: 3, label: "c"})
	require.NoError(t, err)
	back, err := added.Remove(3)
	require.NoError(t, err)

	assert.Equal(t, base.IDs(), back.IDs())
	assert.Equal(t, base.All(), back.All())
}

func TestCollection_MutationsLeaveReceiverUntouched(t *testing.T) {
	base := mustAdd(t, NewCollection[item](),
		item{id: 1, label: "a"},
		item{id: 2, label: "b"},
	)
	wantIDs := []int{1, 2}

	_, err := base.Add(item{id: 3, label: "c"})
	require.NoError(t, err)
	_, err = base.Update(item{id: 1, label: "a2"})
	require.NoError(t, err)
	_, err = base.Remove(2)
	require.NoError(t, err)

	// The original snapshot is fully intact after every operation.
	assert.Equal(t, wantIDs, base.IDs())
	e, ok := base.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", e.label)
	e, ok = base.Get(2)
	require.True(t, ok)
	assert.Equal(t, "b", e.label)
	requireConsistent(t, base)
}

func TestCollection_ReturnedSlicesAreCopies(t *testing.T) {
	c := mustAdd(t, NewCollection[item](),
		item{id: 1, label: "a"},
		item{id: 2, label: "b"},
	)

	ids := c.IDs()
	ids[0] = 99

	assert.Equal(t, []int{1, 2}, c.IDs())
}

func TestCollection_ConsistencyUnderMixedOperations(t *testing.T) {
	// Interleave the three mutation kinds and check the invariant after
	// every step.
	c := NewCollection[item]()
	var err error

	steps := []func(Collection[item]) (Collection[item], error){
		func(c Collection[item]) (Collection[item], error) { return c.Add(item{id: 1, label: "a"}) },
		func(c Collection[item]) (Collection[item], error) { return c.Add(item{id: 2, label: "b"}) },
		func(c Collection[item]) (Collection[item], error) { return c.Update(item{id: 1, label: "a2"}) },
		func(c Collection[item]) (Collection[item], error) { return c.Add(item{id: 3, label: "c"}) },
		func(c Collection[item]) (Collection[item], error) { return c.Remove(2) },
		func(c Collection[item]) (Collection[item], error) { return c.Add(item{id: 2, label: "b2"}) },
		func(c Collection[item]) (Collection[item], error) { return c.Remove(1) },
	}

	for i, step := range steps {
		c, err = step(c)
		require.NoError(t, err, "step %d", i)
		requireConsistent(t, c)
	}

	assert.Equal(t, []int{3, 2}, c.IDs())
}
