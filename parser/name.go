// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package parser defines name validation and parsing operations.
package parser

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
)

const (
	MaxNameSize = 256

	// ByteDelimiter separates storage key prefixes from their payload.
	ByteDelimiter byte = '/'
)

var (
	ErrNameEmpty       = errors.New("name cannot be empty")
	ErrNameTooBig      = errors.New("name too big")
	ErrInvalidEncoding = errors.New("name is not valid utf-8")
	ErrInvalidRune     = errors.New("name contains whitespace or control characters")
	ErrInvalidOwner    = errors.New("owner is not a hex address")
)

// CheckName returns an error if the name format is invalid.
func CheckName(name string) error {
	switch {
	case len(name) == 0:
		return ErrNameEmpty
	case len(name) > MaxNameSize:
		return ErrNameTooBig
	case !utf8.ValidString(name):
		return ErrInvalidEncoding
	case strings.IndexFunc(name, invalidRune) != -1:
		return ErrInvalidRune
	default:
		return nil
	}
}

func invalidRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// ParseOwner parses a "0x"-prefixed hex address.
func ParseOwner(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidOwner
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, ErrInvalidOwner
	}
	return addr, nil
}
