package journal

import (
	"context"
	"fmt"

	"github.com/roach88/reflux/internal/trace"
)

// BeginRun records the start of a run. Watch is the todo id the run's
// observer tracked, needed to reproduce observer values on replay.
// Uses ON CONFLICT(token) DO NOTHING: re-recording a known run token is a
// no-op, which keeps retried drivers idempotent.
func (j *Journal) BeginRun(ctx context.Context, token, scenario string, watch int) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (token, scenario, watch)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, token, scenario, watch)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// AppendDispatch records one dispatch cycle of a run.
//
// Args and order are serialized to canonical JSON so the stored bytes are
// identical across platforms and replays. Duplicate (run, seq) writes are
// silently ignored for idempotency.
//
// The run referenced by token must exist (foreign key constraint).
func (j *Journal) AppendDispatch(ctx context.Context, token string, ev trace.Event) error {
	args := ev.Args
	if args == nil {
		args = map[string]any{}
	}
	argsJSON, err := trace.MarshalCanonical(args)
	if err != nil {
		return fmt.Errorf("append dispatch: marshal args: %w", err)
	}

	order := make([]any, len(ev.Order))
	for i, id := range ev.Order {
		order[i] = id
	}
	orderJSON, err := trace.MarshalCanonical(order)
	if err != nil {
		return fmt.Errorf("append dispatch: marshal order: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO dispatches
		(run_token, seq, action, args, err, entity_order, observed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token, seq) DO NOTHING
	`,
		token,
		ev.Seq,
		ev.Action,
		string(argsJSON),
		ev.Err,
		string(orderJSON),
		ev.Observed,
	)
	if err != nil {
		return fmt.Errorf("append dispatch: %w", err)
	}
	return nil
}

// Record writes a complete snapshot in one call: the run row plus every
// event. Convenience for drivers that build the trace first and journal it
// after the fact.
func (j *Journal) Record(ctx context.Context, s trace.Snapshot) error {
	if err := j.BeginRun(ctx, s.RunToken, s.Scenario, s.Watch); err != nil {
		return err
	}
	for _, ev := range s.Events {
		if err := j.AppendDispatch(ctx, s.RunToken, ev); err != nil {
			return err
		}
	}
	return nil
}
