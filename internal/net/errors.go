package net

import "github.com/pkg/errors"

// These are the errors returned by Network operations. Every shape failure
// is also an ErrInvalidArgument, so callers may test for either.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrShapeMismatch   = errors.Wrap(ErrInvalidArgument, "shape mismatch")
)
