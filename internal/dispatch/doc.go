// Package dispatch implements the reflux store: a single source of truth
// updated only through dispatched actions.
//
// A Store holds the current state value, an ordered chain of reducers, and an
// ordered list of selector/observer subscriptions. Dispatch folds the action
// through every reducer in registration order, commits the final state, then
// fires every subscription with the committed state.
//
// ARCHITECTURE:
//
// Single-Owner Synchronous Cycle:
// All state transitions happen inside Dispatch on the calling goroutine.
// This ensures:
//   - Predictable reducer and observer ordering
//   - All-or-nothing commits: a failing reducer leaves the committed state
//     untouched and fires no observers
//   - Simple reasoning about causality
//
// Reentrancy:
// Dispatch is not reentrant. A Dispatch issued from inside a reducer or
// observer of an in-progress cycle is queued and runs after the current
// cycle commits, in FIFO order. Errors from queued cycles are joined into
// the outermost Dispatch's return value.
//
// Thread-safety model:
//   - A Store is confined to one goroutine; it performs no locking itself
//   - State snapshots returned by State are immutable values and remain
//     valid across later dispatches
//   - Callers sharing a Store across goroutines must serialize Dispatch
//     externally
package dispatch
