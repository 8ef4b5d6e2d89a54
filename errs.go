package pycs

import (
	"errors"
	"fmt"
)

var errInternal = errors.New("internal error")

var (
	// ErrUnknownKey reports an override path that does not exist in a
	// schema-locked tree.
	ErrUnknownKey = errors.New("unknown key")

	// ErrTypeMismatch reports a leaf value failing its declared
	// type/subclass check.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrRequiredMissing reports an unset required leaf at freeze time.
	ErrRequiredMissing = errors.New("missing required value")

	// ErrSchemaViolation reports schema mutation outside the unlocked
	// window, or a declaration that conflicts with a node's leaf spec.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrValidationPhase reports mutation attempted while validators
	// or hooks are running.
	ErrValidationPhase = errors.New("mutation during validation phase")

	// ErrImmutable reports mutation attempted on a frozen tree.
	ErrImmutable = errors.New("tree is frozen")
)

// CallableError wraps a failure from a transform, validator or hook
// with the phase it ran in and the callable's identity. The pipeline
// does not retry or roll back: a tree whose load returned a
// CallableError must be discarded.
type CallableError struct {
	Phase    Phase
	Callable string
	Err      error
}

func (e *CallableError) Error() string {
	return fmt.Sprintf("%s callable %q: %v", e.Phase, e.Callable, e.Err)
}

func (e *CallableError) Unwrap() error {
	return e.Err
}
