package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// digestDomain prefixes snapshot hashes. The version suffix allows the
// encoding to change without old digests colliding with new ones.
const digestDomain = "reflux/trace/v1"

// Observed values for dispatches whose observer selector may miss.
const (
	ObservedNone  = "none"
	ObservedTrue  = "true"
	ObservedFalse = "false"
)

// Event records one dispatch cycle.
type Event struct {
	// Seq is the 1-based logical position of the cycle within the run.
	Seq int64 `json:"seq"`

	// Action is the codec name of the dispatched action.
	Action string `json:"action"`

	// Args is the codec argument map of the dispatched action.
	Args map[string]any `json:"args,omitempty"`

	// Err is the rejection message for failed dispatches, empty on commit.
	Err string `json:"err,omitempty"`

	// Order is the entity insertion order after the cycle. For a rejected
	// dispatch this equals the order before it, since nothing committed.
	Order []int `json:"order"`

	// Observed is the value the registered observer saw, or ObservedNone
	// for a rejected dispatch (observers do not fire on failure).
	Observed string `json:"observed"`
}

// Snapshot is the complete trace of one run.
type Snapshot struct {
	Scenario string
	RunToken string

	// Watch is the todo id the run's observer tracked; zero when the run
	// had no meaningful watch target.
	Watch int

	Events []Event
}

// ObservedBool converts an optional boolean selection into its trace form.
func ObservedBool(v *bool) string {
	switch {
	case v == nil:
		return ObservedNone
	case *v:
		return ObservedTrue
	default:
		return ObservedFalse
	}
}

// canonicalMap flattens the snapshot into the plain values MarshalCanonical
// accepts.
func (s *Snapshot) canonicalMap() map[string]any {
	events := make([]any, len(s.Events))
	for i, ev := range s.Events {
		order := make([]any, len(ev.Order))
		for j, id := range ev.Order {
			order[j] = id
		}

		m := map[string]any{
			"seq":      ev.Seq,
			"action":   ev.Action,
			"order":    order,
			"observed": ev.Observed,
		}
		if ev.Args != nil {
			m["args"] = ev.Args
		}
		if ev.Err != "" {
			m["err"] = ev.Err
		}
		events[i] = m
	}

	m := map[string]any{
		"scenario": s.Scenario,
		"events":   events,
	}
	if s.Watch != 0 {
		m["watch"] = s.Watch
	}
	if s.RunToken != "" {
		m["run_token"] = s.RunToken
	}
	return m
}

// MarshalCanonical serializes the snapshot as canonical JSON.
func (s *Snapshot) MarshalCanonical() ([]byte, error) {
	return MarshalCanonical(s.canonicalMap())
}

// Digest returns the hex SHA-256 of the canonical snapshot with domain
// separation. Two runs with equal digests made identical state transitions
// and observations.
//
// The run token is excluded: digests compare what happened, not which run
// it happened in.
func (s *Snapshot) Digest() (string, error) {
	stripped := Snapshot{Scenario: s.Scenario, Watch: s.Watch, Events: s.Events}
	canonical, err := stripped.MarshalCanonical()
	if err != nil {
		return "", fmt.Errorf("trace digest: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(digestDomain))
	h.Write([]byte{0x00}) // separator: domain must not blend into data
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}
