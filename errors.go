// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// Errors returned by Graph and Controller operations. They are always wrapped
// with the offending ids; use errors.Is or errors.Cause to test for them.
//
var (
	// ErrNotFound reports a node or wire that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSlot reports a slot index outside a node's arity.
	ErrInvalidSlot = errors.New("invalid slot")

	// ErrSlotOccupied reports a connection into a slot that already has a
	// wire.
	ErrSlotOccupied = errors.New("slot occupied")

	// ErrCycleDetected reports a connection that would close a cycle.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrWrongKind reports an operation applied to a node of the wrong kind,
	// like setting the drive of a gate or wiring from a probe.
	ErrWrongKind = errors.New("wrong node kind")

	// ErrUnknownKind reports an unknown kind name or value.
	ErrUnknownKind = errors.New("unknown node kind")

	// ErrInconsistentGraph reports a broken graph invariant found during
	// evaluation. It signals a programming error, not a user error.
	ErrInconsistentGraph = errors.New("inconsistent graph")
)

// IsFatal returns true if err signals a broken graph invariant.
//
func IsFatal(err error) bool {
	return errors.Is(err, ErrInconsistentGraph)
}
