// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/ava-labs/gibbername/parser"
)

const (
	KeyVersion1       uint8 = 1
	DefaultKeyVersion       = KeyVersion1
)

// KeyDeriver maps a name to the storage key holding its record.
type KeyDeriver interface {
	Version() uint8
	Key(name string) []byte
}

var keyDerivers = map[uint8]KeyDeriver{
	KeyVersion1: &hashDeriver{
		version: KeyVersion1,
		domain:  []byte("gibbername/record/v1"),
	},
}

func KeyDeriverFor(version uint8) (KeyDeriver, error) {
	kd, ok := keyDerivers[version]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKeyVersion, version)
	}
	return kd, nil
}

// hashDeriver keys records by SHA3-256(domain || 0x00 || name), prefixed by
// the record namespace and the derivation version.
type hashDeriver struct {
	version uint8
	domain  []byte
}

func (h *hashDeriver) Version() uint8 { return h.version }

func (h *hashDeriver) Key(name string) []byte {
	d := sha3.New256()
	_, _ = d.Write(h.domain)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write([]byte(name))

	k := make([]byte, 0, 3+d.Size())
	k = append(k, recordPrefix, parser.ByteDelimiter, h.version)
	return d.Sum(k)
}
