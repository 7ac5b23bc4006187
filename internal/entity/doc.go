// Package entity provides the persistent, identity-indexed collection that
// all reflux state is built from.
//
// A Collection keeps two views of its contents: an insertion-ordered id list
// and an id-to-entity map. The two views always cover exactly the same id
// set. Every mutating operation returns a new Collection value and leaves the
// receiver untouched, so snapshots taken at any point remain valid forever.
//
// Key design constraints:
//   - Identity is a stable int; entities report it via EntityID()
//   - Add is strict: a duplicate id is an error, never a silent overwrite
//   - Update and Remove are strict: a missing id is an error, never an upsert
//   - Mutations copy the full id map, so cost is linear in collection size;
//     fine for the small states this package targets, a caveat for large ones
//
// This package imports nothing internal. Every other reflux package builds
// on it.
package entity
