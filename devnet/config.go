// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package devnet

import (
	"time"

	"github.com/ava-labs/gibbername/chain"
)

type Config struct {
	BuildInterval time.Duration `serialize:"true" json:"buildInterval"`

	MempoolSize int `serialize:"true" json:"mempoolSize"`
	MaxBlockTxs int `serialize:"true" json:"maxBlockTxs"`
	// MaxBlockSize bounds the encoded size of a built block. It may not
	// exceed [chain.MaxBlockSize].
	MaxBlockSize uint64 `serialize:"true" json:"maxBlockSize"`

	// RecentBlocks is how many accepted blocks a transaction may reference.
	RecentBlocks int `serialize:"true" json:"recentBlocks"`
}

func (c *Config) SetDefaults() {
	c.BuildInterval = 500 * time.Millisecond

	c.MempoolSize = 1024
	c.MaxBlockTxs = 256
	c.MaxBlockSize = chain.MaxBlockSize

	c.RecentBlocks = 256
}
