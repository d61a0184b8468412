// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
)

var (
	// Record Correctness
	ErrMalformed      = errors.New("malformed record")
	ErrUnknownVersion = errors.New("unknown record version")
	ErrInvalidName    = errors.New("invalid name")
	ErrBindingTooBig  = errors.New("binding too big")

	// Key Derivation
	ErrUnknownKeyVersion = errors.New("unknown key derivation version")

	// Tx Correctness
	ErrInvalidBlockID   = errors.New("invalid blockID")
	ErrInvalidMagic     = errors.New("invalid magic")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidType      = errors.New("invalid tx type")
	ErrDuplicateTx      = errors.New("duplicate transaction")
	ErrEmptyOwner       = errors.New("owner cannot be empty")
	ErrTxTooBig         = errors.New("transaction does not fit in a block")

	// Execution Correctness
	ErrNameTaken    = errors.New("name already registered")
	ErrUnauthorized = errors.New("sender is not authorized")

	// Network
	ErrUnknownNetwork = errors.New("unknown network")
	ErrInvalidPolicy  = errors.New("invalid rebind policy")
)
