// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gibbername/parser"
)

// RecordVersion is the newest record layout this package can read. It is
// written as the leading 2-byte (big-endian) codec version tag.
const RecordVersion = codecVersion

const versionLen = 2

// Record is the on-chain registry entry.
//
// Layout (codec version 0):
//   [version uint16][len(name) uint16][name][owner 20B][len(binding) uint32][binding]
type Record struct {
	Name    string         `serialize:"true" json:"name"`
	Owner   common.Address `serialize:"true" json:"owner"`
	Binding []byte         `serialize:"true" json:"binding"`
}

func (r *Record) Equal(o *Record) bool {
	return r.Name == o.Name && r.Owner == o.Owner && bytes.Equal(r.Binding, o.Binding)
}

func EncodeRecord(r *Record) ([]byte, error) {
	if err := parser.CheckName(r.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return Marshal(r)
}

// DecodeRecord refuses newer layouts with [ErrUnknownVersion] and anything
// that does not parse exactly with [ErrMalformed].
func DecodeRecord(b []byte) (*Record, error) {
	if len(b) < versionLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformed, len(b))
	}
	if v := binary.BigEndian.Uint16(b); v > RecordVersion {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrUnknownVersion, v, RecordVersion)
	}
	r := new(Record)
	if _, err := Unmarshal(b, r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := parser.CheckName(r.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return r, nil
}
