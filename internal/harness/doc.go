// Package harness executes YAML-defined dispatch scenarios against a real
// todo store and verifies the results.
//
// A scenario names a sequence of actions to dispatch, the per-step errors it
// expects, and expectations on the final state and on the values the
// registered observer saw. The harness runs the sequence on a fresh store,
// records a deterministic trace, and evaluates the expectations against the
// outcome.
//
// # Scenario Format
//
//	name: basic_crud
//	description: "What this scenario validates"
//	watch: 2            # todo id whose done flag the observer tracks
//	steps:
//	  - action: add
//	    args: { id: 1, task: "first" }
//	  - action: mark_done
//	    args: { id: 9, done: true }
//	    expect_error: "not found"
//	expect:
//	  order: [1]
//	  todos:
//	    - { id: 1, task: "first", done: false }
//	  observed: ["none", "none"]
//
// Scenario files are validated against an embedded CUE schema before they
// run, so malformed files fail with a schema error instead of a confusing
// mid-run failure.
//
// # Deterministic Testing
//
// Runs are numbered by a logical clock and identified by run tokens from a
// pluggable generator; with a fixed generator the same scenario produces a
// byte-identical canonical trace, which RunWithGolden compares against
// golden files under testdata/.
//
// The harness can journal every run and replay a journaled run against a
// fresh store, comparing trace digests to verify the dispatch protocol is
// deterministic.
package harness
