package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterState is a small value-semantics state for store tests.
type counterState struct {
	value int
	log   string // accumulating trace of reducer applications
}

type counterAction struct {
	kind  string // "inc", "boom", "noop"
	delta int
}

var errBoom = errors.New("boom")

// applyReducer interprets counterActions; "boom" always fails.
func applyReducer(s counterState, a counterAction) (counterState, error) {
	switch a.kind {
	case "inc":
		s.value += a.delta
		s.log += "a"
		return s, nil
	case "boom":
		return s, errBoom
	default:
		s.log += "a"
		return s, nil
	}
}

// tagReducer appends its tag to the log, making reducer order observable.
func tagReducer(tag string) Reducer[counterState, counterAction] {
	return func(s counterState, a counterAction) (counterState, error) {
		s.log += tag
		return s, nil
	}
}

func TestStore_DispatchAppliesReducer(t *testing.T) {
	st := New[counterState, counterAction](counterState{})
	st.Use(applyReducer)

	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 3}))
	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 4}))

	assert.Equal(t, 7, st.State().value)
}

func TestStore_FoldOrderIsRegistrationOrder(t *testing.T) {
	st := New[counterState, counterAction](counterState{}).
		Use(tagReducer("1")).
		Use(tagReducer("2")).
		Use(tagReducer("3"))

	require.NoError(t, st.Dispatch(counterAction{kind: "noop"}))

	assert.Equal(t, "123", st.State().log)
}

func TestStore_FailingReducerCommitsNothing(t *testing.T) {
	st := New[counterState, counterAction](counterState{}).
		Use(tagReducer("1")).
		Use(applyReducer). // fails on "boom" after tagReducer already ran
		Use(tagReducer("3"))

	fired := 0
	Observe(st, func(s counterState) int { return s.value }, func(int) { fired++ })

	before := st.State()
	err := st.Dispatch(counterAction{kind: "boom"})
	require.ErrorIs(t, err, errBoom)

	// No partial commit: not even the reducers before the failing one are
	// visible, and no observers fired.
	assert.Equal(t, before, st.State())
	assert.Equal(t, 0, fired)
}

func TestStore_ObserversFireOncePerCommit(t *testing.T) {
	st := New[counterState, counterAction](counterState{}).Use(applyReducer)

	var values []int
	Observe(st, func(s counterState) int { return s.value }, func(v int) {
		values = append(values, v)
	})

	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 1}))
	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 2}))
	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 3}))

	assert.Equal(t, []int{1, 3, 6}, values)
}

func TestStore_ObserversFireInRegistrationOrder(t *testing.T) {
	st := New[counterState, counterAction](counterState{}).Use(applyReducer)

	var order []string
	Observe(st, func(s counterState) int { return s.value }, func(int) {
		order = append(order, "first")
	})
	Observe(st, func(s counterState) int { return s.value }, func(int) {
		order = append(order, "second")
	})

	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 1}))

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_ObserveDoesNotFireRetroactively(t *testing.T) {
	st := New[counterState, counterAction](counterState{}).Use(applyReducer)
	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 1}))

	fired := 0
	Observe(st, func(s counterState) int { return s.value }, func(int) { fired++ })

	assert.Equal(t, 0, fired)

	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 1}))
	assert.Equal(t, 1, fired)
}

func TestStore_SelectDoesNotRegister(t *testing.T) {
	st := New[counterState, counterAction](counterState{value: 5}).Use(applyReducer)

	got := Select(st, func(s counterState) int { return s.value * 2 })
	assert.Equal(t, 10, got)

	// Selecting registered nothing: dispatching afterwards calls no one.
	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 1}))
	assert.Equal(t, 6, st.State().value)
}

func TestStore_SnapshotsSurviveLaterDispatches(t *testing.T) {
	st := New[counterState, counterAction](counterState{}).Use(applyReducer)

	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 1}))
	snapshot := st.State()

	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 10}))

	assert.Equal(t, 1, snapshot.value)
	assert.Equal(t, 11, st.State().value)
}

func TestStore_NestedDispatchQueuedFIFO(t *testing.T) {
	st := New[counterState, counterAction](counterState{}).Use(applyReducer)

	var seen []int
	first := true
	Observe(st, func(s counterState) int { return s.value }, func(v int) {
		seen = append(seen, v)
		if first {
			first = false
			// Two nested dispatches from inside the observer: both must be
			// deferred until after this cycle, then run in order.
			require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 10}))
			require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 100}))
			// Neither has run yet.
			assert.Equal(t, v, st.State().value)
		}
	})

	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 1}))

	assert.Equal(t, []int{1, 11, 111}, seen)
	assert.Equal(t, 111, st.State().value)
}

func TestStore_NestedDispatchFromReducerQueued(t *testing.T) {
	var st *Store[counterState, counterAction]
	st = New[counterState, counterAction](counterState{}).
		Use(func(s counterState, a counterAction) (counterState, error) {
			if a.kind == "spawn" {
				// A reducer must stay pure, but if one does dispatch, the
				// action is queued rather than applied mid-fold.
				require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 5}))
				return s, nil
			}
			return applyReducer(s, a)
		})

	require.NoError(t, st.Dispatch(counterAction{kind: "spawn"}))

	assert.Equal(t, 5, st.State().value)
}

func TestStore_QueuedFailureSurfacesFromOuterDispatch(t *testing.T) {
	st := New[counterState, counterAction](counterState{}).Use(applyReducer)

	first := true
	Observe(st, func(s counterState) int { return s.value }, func(int) {
		if first {
			first = false
			require.NoError(t, st.Dispatch(counterAction{kind: "boom"}))
			require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 2}))
		}
	})

	err := st.Dispatch(counterAction{kind: "inc", delta: 1})
	require.ErrorIs(t, err, errBoom)

	// The failing queued cycle did not stop the one behind it.
	assert.Equal(t, 3, st.State().value)
}

func TestStore_NoReducersIsACommit(t *testing.T) {
	st := New[counterState, counterAction](counterState{value: 1})

	fired := 0
	Observe(st, func(s counterState) int { return s.value }, func(int) { fired++ })

	require.NoError(t, st.Dispatch(counterAction{kind: "inc", delta: 9}))

	// With no reducers the state is unchanged but the cycle still commits
	// and notifies.
	assert.Equal(t, 1, st.State().value)
	assert.Equal(t, 1, fired)
}
