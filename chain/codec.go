// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	// codecVersion is the current default codec version
	codecVersion = 0

	// MaxBlockSize bounds every encoding, blocks included.
	MaxBlockSize = 256 * units.KiB
	// BlockHeaderSize is the encoded size of a block with no transactions.
	BlockHeaderSize = wrappers.ShortLen + hashing.HashLen + 2*wrappers.LongLen + wrappers.IntLen
)

var codecManager codec.Manager

func init() {
	c := linearcodec.NewDefault()
	codecManager = codec.NewManager(MaxBlockSize)
	errs := wrappers.Errs{}
	errs.Add(
		c.RegisterType(&BaseTx{}),
		c.RegisterType(&RegisterTx{}),
		c.RegisterType(&Transaction{}),
		c.RegisterType(&Block{}),
		c.RegisterType(&Record{}),
		c.RegisterType(&Receipt{}),
		codecManager.RegisterCodec(codecVersion, c),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

func Marshal(source interface{}) ([]byte, error) {
	return codecManager.Marshal(codecVersion, source)
}

func Unmarshal(source []byte, destination interface{}) (uint16, error) {
	return codecManager.Unmarshal(source, destination)
}
