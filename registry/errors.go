// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"errors"
	"fmt"
)

var (
	// Resolve
	ErrNotConnected = errors.New("no finalized chain state reachable")
	ErrInconsistent = errors.New("record does not match queried name")
	ErrDecode       = errors.New("failed to decode record")

	// Register
	ErrAlreadyTaken  = errors.New("name already taken")
	ErrLostRace      = errors.New("lost registration race")
	ErrSigningFailed = errors.New("signing failed")
	ErrUnconfirmed   = errors.New("registration finalized but record not found")
)

// kindError tags [err] with a registry error kind so callers can match
// either with errors.Is.
type kindError struct {
	kind error
	err  error
}

func wrap(kind error, err error) error {
	return &kindError{kind: kind, err: err}
}

func (e *kindError) Error() string { return fmt.Sprintf("%v: %v", e.kind, e.err) }

func (e *kindError) Is(target error) bool { return target == e.kind }

func (e *kindError) Unwrap() error { return e.err }
