// Package trace records dispatch cycles as deterministic, canonically
// serialized events.
//
// A trace is the driver-side record of what a store did: one Event per
// dispatch cycle, carrying the action, its arguments, the resulting entity
// order, and the value the registered observer saw. Rejected dispatches are
// recorded with their error text and the unchanged order.
//
// Serialization is canonical JSON in the spirit of RFC 8785: object keys
// sorted by UTF-16 code units, strings NFC-normalized, no HTML escaping, no
// floats, no null. Identical runs therefore produce byte-identical snapshots,
// which is what golden-file comparison and replay verification depend on.
package trace
