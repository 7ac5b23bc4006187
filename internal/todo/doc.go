// Package todo is the demonstration domain for the reflux core: a todo list
// held in an entity collection, evolved through a small action vocabulary.
//
// The package shows the two reducer layers the core expects. Entity-level
// actions (add, update, remove) are delegated to the generic entity reducer;
// domain actions (mark_done, change_text) address a single field of one todo
// and rebuild the collection through Update, never by editing in place.
//
// The action codec (EncodeAction/DecodeAction) gives every action a stable
// name and argument map so the journal and scenario harness can round-trip
// dispatch sequences.
package todo
