// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
)

type BaseTx struct {
	// BlockID is the ID of a recently accepted block; it bounds how long a
	// signed transaction stays valid.
	BlockID ids.ID `serialize:"true" json:"blockId"`

	// Magic is the network identity the transaction was signed for.
	Magic uint64 `serialize:"true" json:"magic"`
}

func (b *BaseTx) SetBlockID(bid ids.ID) {
	b.BlockID = bid
}

func (b *BaseTx) GetBlockID() ids.ID {
	return b.BlockID
}

func (b *BaseTx) SetMagic(m uint64) {
	b.Magic = m
}

func (b *BaseTx) GetMagic() uint64 {
	return b.Magic
}

func (b *BaseTx) ExecuteBase(g *Genesis) error {
	if b.BlockID == ids.Empty {
		return ErrInvalidBlockID
	}
	if b.Magic != g.Magic {
		return ErrInvalidMagic
	}
	return nil
}

func (b *BaseTx) Copy() *BaseTx {
	return &BaseTx{
		BlockID: b.BlockID,
		Magic:   b.Magic,
	}
}
