package entity

import (
	"errors"
	"fmt"
)

// NotFoundError reports an operation that targeted an id absent from the
// collection. Returned by Update, Remove, and domain reducers that address
// a single entity.
type NotFoundError struct {
	// ID is the identity that was not present.
	ID int
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entity %d: not found", e.ID)
}

// DuplicateIDError reports an Add whose entity id already exists in the
// collection. Add is strict: overwriting silently would leave a duplicate
// entry in the insertion order.
type DuplicateIDError struct {
	// ID is the identity that already existed.
	ID int
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("entity %d: duplicate id", e.ID)
}

// UnknownActionError reports an action variant a reducer does not recognize.
// The action unions in this module are sealed interfaces, but the type system
// cannot prove a switch over them exhaustive, so reducers surface the default
// case explicitly instead of ignoring it.
type UnknownActionError struct {
	// Action is the unrecognized value, retained for diagnostics.
	Action any
}

// Error implements the error interface.
func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action variant %T", e.Action)
}

// IsNotFound returns true if the error is a NotFoundError.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDuplicateID returns true if the error is a DuplicateIDError.
// Uses errors.As to handle wrapped errors.
func IsDuplicateID(err error) bool {
	var dup *DuplicateIDError
	return errors.As(err, &dup)
}
