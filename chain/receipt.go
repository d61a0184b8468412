// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"
)

// Receipt reports the finalized outcome of a transaction. A transaction that
// failed execution is still final; it just left state untouched.
type Receipt struct {
	TxID     ids.ID `serialize:"true" json:"txId"`
	BlockID  ids.ID `serialize:"true" json:"blockId"`
	Height   uint64 `serialize:"true" json:"height"`
	Accepted bool   `serialize:"true" json:"accepted"`
	Reason   string `serialize:"true" json:"reason,omitempty"`
}
