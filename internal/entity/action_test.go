package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_Add(t *testing.T) {
	c, err := Reduce(NewCollection[item](), Add[item]{Entity: item{id: 1, label: "a"}})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, c.IDs())
}

func TestReduce_Update(t *testing.T) {
	c := mustAdd(t, NewCollection[item](), item{id: 1, label: "a"})

	c2, err := Reduce(c, Update[item]{Entity: item{id: 1, label: "a2"}})
	require.NoError(t, err)

	e, ok := c2.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a2", e.label)
}

func TestReduce_Remove(t *testing.T) {
	c := mustAdd(t, NewCollection[item](),
		item{id: 1, label: "a"},
		item{id: 2, label: "b"},
	)

	c2, err := Reduce(c, Remove[item]{ID: 1})
	require.NoError(t, err)

	assert.Equal(t, []int{2}, c2.IDs())
}

func TestReduce_ErrorsPropagate(t *testing.T) {
	c := mustAdd(t, NewCollection[item](), item{id: 1, label: "a"})

	_, err := Reduce(c, Add[item]{Entity: item{id: 1}})
	assert.True(t, IsDuplicateID(err))

	_, err = Reduce(c, Update[item]{Entity: item{id: 2}})
	assert.True(t, IsNotFound(err))

	_, err = Reduce(c, Remove[item]{ID: 2})
	assert.True(t, IsNotFound(err))
}

// rogueAction lives outside the sealed set to exercise the default case.
type rogueAction struct{}

func (rogueAction) isEntityAction() {}

func TestReduce_UnknownVariant(t *testing.T) {
	c := mustAdd(t, NewCollection[item](), item{id: 1, label: "a"})

	got, err := Reduce(c, rogueAction{})
	require.Error(t, err)

	var unknown *UnknownActionError
	require.ErrorAs(t, err, &unknown)

	// Collection returned unchanged.
	assert.Equal(t, c.IDs(), got.IDs())
}
