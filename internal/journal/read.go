package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/reflux/internal/trace"
)

// RunInfo summarizes a recorded run.
type RunInfo struct {
	Token      string
	Scenario   string
	Dispatches int
}

// RunNotFoundError reports a read of an unknown run token.
type RunNotFoundError struct {
	Token string
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("run %q: not found", e.Token)
}

// IsRunNotFound reports whether err is a RunNotFoundError.
func IsRunNotFound(err error) bool {
	var target *RunNotFoundError
	return errors.As(err, &target)
}

// ListRuns returns all recorded runs with their dispatch counts.
// Ordered by token; UUIDv7 tokens make that creation order.
func (j *Journal) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT r.token, r.scenario, COUNT(d.seq)
		FROM runs r
		LEFT JOIN dispatches d ON d.run_token = r.token
		GROUP BY r.token, r.scenario
		ORDER BY r.token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.Token, &info.Scenario, &info.Dispatches); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun reconstructs the full trace snapshot of a recorded run.
// Dispatches come back in seq order, exactly as written.
// Returns a RunNotFoundError for an unknown token.
func (j *Journal) ReadRun(ctx context.Context, token string) (trace.Snapshot, error) {
	s := trace.Snapshot{RunToken: token}

	err := j.db.QueryRowContext(ctx,
		`SELECT scenario, watch FROM runs WHERE token = ?`, token,
	).Scan(&s.Scenario, &s.Watch)
	if err == sql.ErrNoRows {
		return s, &RunNotFoundError{Token: token}
	}
	if err != nil {
		return s, fmt.Errorf("read run: %w", err)
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, action, args, err, entity_order, observed
		FROM dispatches
		WHERE run_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return s, fmt.Errorf("read run dispatches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ev        trace.Event
			argsJSON  string
			orderJSON string
		)
		if err := rows.Scan(&ev.Seq, &ev.Action, &argsJSON, &ev.Err, &orderJSON, &ev.Observed); err != nil {
			return s, fmt.Errorf("scan dispatch: %w", err)
		}

		ev.Args, err = decodeArgs(argsJSON)
		if err != nil {
			return s, fmt.Errorf("dispatch seq %d: %w", ev.Seq, err)
		}
		if err := json.Unmarshal([]byte(orderJSON), &ev.Order); err != nil {
			return s, fmt.Errorf("dispatch seq %d: decode order: %w", ev.Seq, err)
		}
		if ev.Order == nil {
			ev.Order = []int{}
		}

		s.Events = append(s.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("iterate dispatches: %w", err)
	}

	return s, nil
}

// decodeArgs parses an argument object keeping numbers as json.Number, so
// integer ids survive the round trip without a float detour.
func decodeArgs(argsJSON string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(argsJSON))
	dec.UseNumber()

	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("decode args: %w", err)
	}
	return args, nil
}
