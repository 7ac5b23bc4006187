package harness

import (
	"context"
	"fmt"

	"github.com/roach88/reflux/internal/dispatch"
	"github.com/roach88/reflux/internal/journal"
	"github.com/roach88/reflux/internal/testutil"
	"github.com/roach88/reflux/internal/todo"
	"github.com/roach88/reflux/internal/trace"
)

// DivergenceError reports a replay whose trace digest differs from the
// recorded run's. Either the journal was edited or dispatch is not
// deterministic; both deserve a loud failure.
type DivergenceError struct {
	Token    string
	Recorded string
	Replayed string
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("replay of run %q diverged: recorded digest %s, replayed %s",
		e.Token, e.Recorded, e.Replayed)
}

// Replay reads a journaled run, re-dispatches its actions on a fresh store,
// and compares trace digests. Returns the replayed snapshot on success and a
// DivergenceError when the digests differ.
//
// Failed dispatches are replayed too: the recorded error must reproduce,
// since a rejected action is as much a part of the run as a committed one.
func Replay(ctx context.Context, j *journal.Journal, token string) (*trace.Snapshot, error) {
	recorded, err := j.ReadRun(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	replayed := trace.Snapshot{
		Scenario: recorded.Scenario,
		RunToken: token,
		Watch:    recorded.Watch,
	}

	st := dispatch.New[todo.State, todo.Action](todo.NewState()).Use(todo.Reduce)
	recorder := testutil.NewRecorder[*bool]()
	dispatch.Observe(st, todo.DoneFlag(recorded.Watch), recorder.Observe)
	clock := testutil.NewClock()

	for _, rec := range recorded.Events {
		action, err := todo.DecodeAction(rec.Action, rec.Args)
		if err != nil {
			return nil, fmt.Errorf("replay seq %d: %w", rec.Seq, err)
		}

		before := recorder.Count()
		dispatchErr := st.Dispatch(action)

		ev := trace.Event{
			Seq:      clock.Next(),
			Action:   rec.Action,
			Args:     rec.Args,
			Order:    todo.Order(st.State()),
			Observed: trace.ObservedNone,
		}
		if dispatchErr != nil {
			ev.Err = dispatchErr.Error()
		} else if recorder.Count() > before {
			ev.Observed = trace.ObservedBool(recorder.Values()[recorder.Count()-1])
		}
		replayed.Events = append(replayed.Events, ev)
	}

	recordedDigest, err := recorded.Digest()
	if err != nil {
		return nil, fmt.Errorf("replay: recorded digest: %w", err)
	}
	replayedDigest, err := replayed.Digest()
	if err != nil {
		return nil, fmt.Errorf("replay: replayed digest: %w", err)
	}

	if recordedDigest != replayedDigest {
		return nil, &DivergenceError{
			Token:    token,
			Recorded: recordedDigest,
			Replayed: replayedDigest,
		}
	}
	return &replayed, nil
}
