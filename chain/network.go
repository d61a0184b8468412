// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*NetworkID)(nil)

// NetworkID selects an independent chain instance. Two networks never share
// registry entries.
type NetworkID string

const (
	Mainnet NetworkID = "mainnet"
	Testnet NetworkID = "testnet"
	Local   NetworkID = "local"
)

// magics are mixed into every signed digest so a transaction signed for one
// network never verifies on another.
var magics = map[NetworkID]uint64{
	Mainnet: 0x676e2d6d61696e00, // "gn-main"
	Testnet: 0x676e2d7465737400, // "gn-test"
	Local:   0x676e2d6c6f63616c, // "gn-local"
}

// Networks lists every known network.
func Networks() []NetworkID {
	return []NetworkID{Mainnet, Testnet, Local}
}

func ParseNetworkID(s string) (NetworkID, error) {
	n := NetworkID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := magics[n]; !ok {
		return "", fmt.Errorf("%w: %q (expected one of %v)", ErrUnknownNetwork, s, Networks())
	}
	return n, nil
}

// Magic returns 0 for unknown networks.
func (n NetworkID) Magic() uint64 { return magics[n] }

func (n NetworkID) Valid() bool {
	_, ok := magics[n]
	return ok
}

func (n NetworkID) String() string { return string(n) }

func (n *NetworkID) Set(s string) error {
	p, err := ParseNetworkID(s)
	if err != nil {
		return err
	}
	*n = p
	return nil
}

func (n *NetworkID) Type() string { return "network" }
