// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/units"
)

// RebindPolicy decides whether a registered name may be bound to new data.
type RebindPolicy string

const (
	// RebindImmutable makes the first finalized binding permanent.
	RebindImmutable RebindPolicy = "immutable"
	// RebindOwner lets the recorded owner replace its own binding.
	RebindOwner RebindPolicy = "owner"
)

func ParseRebindPolicy(s string) (RebindPolicy, error) {
	switch p := RebindPolicy(s); p {
	case RebindImmutable, RebindOwner:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

const DefaultMaxBindingSize = 64 * units.KiB

type Genesis struct {
	Network NetworkID `serialize:"true" json:"network"`
	Magic   uint64    `serialize:"true" json:"magic"`

	// KeyVersion selects the name to storage key derivation.
	KeyVersion uint8 `serialize:"true" json:"keyVersion"`

	RebindPolicy   RebindPolicy `serialize:"true" json:"rebindPolicy"`
	MaxBindingSize uint64       `serialize:"true" json:"maxBindingSize"`
}

func DefaultGenesis(n NetworkID) *Genesis {
	return &Genesis{
		Network:        n,
		Magic:          n.Magic(),
		KeyVersion:     DefaultKeyVersion,
		RebindPolicy:   RebindImmutable,
		MaxBindingSize: DefaultMaxBindingSize,
	}
}

func (g *Genesis) Verify() error {
	if !g.Network.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownNetwork, g.Network)
	}
	if g.Magic != g.Network.Magic() {
		return ErrInvalidMagic
	}
	if _, err := ParseRebindPolicy(string(g.RebindPolicy)); err != nil {
		return err
	}
	_, err := g.KeyDeriver()
	return err
}

func (g *Genesis) KeyDeriver() (KeyDeriver, error) {
	return KeyDeriverFor(g.KeyVersion)
}
