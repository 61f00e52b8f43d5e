package entigo

import "errors"

var (
	// ErrAlreadyRegistered is returned when a component type is registered
	// against a second backend. Each type is wired to exactly one backend.
	ErrAlreadyRegistered = errors.New("component type already registered")

	// ErrNotRegistered is returned when a snapshot contains a store section
	// for a component type the pool has no registration for.
	ErrNotRegistered = errors.New("component type not registered")

	// ErrUnknownCodec is returned when a snapshot header names a codec this
	// build does not know.
	ErrUnknownCodec = errors.New("unknown snapshot codec")

	// ErrStoreMismatch is returned when a snapshot's store sections do not
	// line up with the pool's registrations (missing section or different
	// backend kind).
	ErrStoreMismatch = errors.New("snapshot store mismatch")
)
