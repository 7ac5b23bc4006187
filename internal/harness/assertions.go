package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/reflux/internal/todo"
)

// Verify evaluates the scenario's expectations against a run result.
// Returns one error per failed expectation; nil-length means the scenario
// passed. All expectations are checked, not fail-fast.
func Verify(sc *Scenario, res *Result) []error {
	if sc.Expect == nil {
		return nil
	}

	var errs []error
	exp := sc.Expect

	if exp.Order != nil {
		got := todo.Order(res.State)
		if !slices.Equal(exp.Order, got) {
			errs = append(errs, fmt.Errorf("final order: expected %v, got %v", exp.Order, got))
		}
	}

	for _, want := range exp.Todos {
		got, ok := res.State.Todos.Get(want.ID)
		if !ok {
			errs = append(errs, fmt.Errorf("todo %d: expected present, not found", want.ID))
			continue
		}
		if got.Task != want.Task {
			errs = append(errs, fmt.Errorf("todo %d: expected task %q, got %q", want.ID, want.Task, got.Task))
		}
		if got.Done != want.Done {
			errs = append(errs, fmt.Errorf("todo %d: expected done=%v, got %v", want.ID, want.Done, got.Done))
		}
	}

	if exp.Observed != nil {
		got := make([]string, len(res.Snapshot.Events))
		for i, ev := range res.Snapshot.Events {
			got[i] = ev.Observed
		}
		if !slices.Equal(exp.Observed, got) {
			errs = append(errs, fmt.Errorf("observed values: expected %v, got %v", exp.Observed, got))
		}
	}

	return errs
}
