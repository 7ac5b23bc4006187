package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/reflux/internal/dispatch"
	"github.com/roach88/reflux/internal/journal"
	"github.com/roach88/reflux/internal/testutil"
	"github.com/roach88/reflux/internal/todo"
	"github.com/roach88/reflux/internal/trace"
)

// Runner executes scenarios against fresh todo stores.
//
// The zero value runs with UUIDv7 run tokens and no journaling. Set Tokens
// for deterministic tokens, Journal to record every run.
type Runner struct {
	Tokens  journal.TokenGenerator
	Journal *journal.Journal
}

// Result is the outcome of one scenario run.
type Result struct {
	// Snapshot is the recorded trace of the run.
	Snapshot trace.Snapshot

	// State is the final store state.
	State todo.State
}

// Run executes the scenario and returns its trace and final state.
//
// A step that fails when the scenario did not expect it to (or succeeds when
// an error was expected, or fails with the wrong error) aborts the run.
// Expectations on the final outcome are evaluated separately via Verify.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	st := dispatch.New[todo.State, todo.Action](todo.NewState()).Use(todo.Reduce)

	recorder := testutil.NewRecorder[*bool]()
	dispatch.Observe(st, todo.DoneFlag(sc.WatchID()), recorder.Observe)

	clock := testutil.NewClock()
	snapshot := trace.Snapshot{
		Scenario: sc.Name,
		RunToken: r.token(),
		Watch:    sc.WatchID(),
	}

	for i, step := range sc.Steps {
		action, err := todo.DecodeAction(step.Action, step.Args)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		before := recorder.Count()
		dispatchErr := st.Dispatch(action)

		if err := checkStepError(step, dispatchErr); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}

		ev := trace.Event{
			Seq:      clock.Next(),
			Action:   step.Action,
			Args:     step.Args,
			Order:    todo.Order(st.State()),
			Observed: trace.ObservedNone,
		}
		if dispatchErr != nil {
			ev.Err = dispatchErr.Error()
		} else if recorder.Count() > before {
			ev.Observed = trace.ObservedBool(recorder.Values()[recorder.Count()-1])
		}
		snapshot.Events = append(snapshot.Events, ev)
	}

	if r.Journal != nil {
		if err := r.Journal.Record(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("journal run: %w", err)
		}
	}

	return &Result{Snapshot: snapshot, State: st.State()}, nil
}

func (r *Runner) token() string {
	if r.Tokens != nil {
		return r.Tokens.Generate()
	}
	return journal.UUIDv7Generator{}.Generate()
}

// checkStepError matches a dispatch outcome against the step's declared
// expectation.
func checkStepError(step Step, err error) error {
	if step.ExpectError == "" {
		if err != nil {
			return fmt.Errorf("unexpected dispatch error: %w", err)
		}
		return nil
	}

	if err == nil {
		return fmt.Errorf("expected error containing %q, dispatch succeeded", step.ExpectError)
	}
	if !strings.Contains(err.Error(), step.ExpectError) {
		return fmt.Errorf("expected error containing %q, got %q", step.ExpectError, err.Error())
	}
	return nil
}
