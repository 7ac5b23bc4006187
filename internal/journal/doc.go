// Package journal provides SQLite-backed storage for recorded dispatch runs.
//
// The journal is a driver-side collaborator: the store itself stays purely
// in-memory, but the demo driver and the scenario harness can record each
// dispatch cycle here so runs can be inspected later and replayed for
// determinism verification.
//
// The log is append-only:
//   - Runs: one row per recorded run, keyed by run token
//   - Dispatches: one row per dispatch cycle, keyed by (run token, seq)
//
// Ordering always uses the seq column, a logical clock, never timestamps;
// reading a run back yields exactly the trace that was written, regardless
// of wall time. Action arguments are stored as canonical JSON so a run's
// bytes are identical across platforms.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: dispatches must belong to a run
package journal
