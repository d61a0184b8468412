// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"errors"
	"fmt"

	"github.com/ava-labs/gibbername/chain"
)

var (
	ErrNotConnected    = errors.New("not connected to a finalized chain state")
	ErrNetworkMismatch = errors.New("endpoint serves a different network")
	ErrTxRejected      = errors.New("transaction rejected")
	// ErrTxUnknown means the chain neither finalized nor holds the
	// transaction. It was dropped or never reached this endpoint.
	ErrTxUnknown = errors.New("transaction unknown to the chain")
)

// CheckReceipt returns [ErrTxRejected] with the chain's reason if [r] records
// a failed execution. A rejected transaction is still final.
func CheckReceipt(r *chain.Receipt) error {
	if r.Accepted {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrTxRejected, r.Reason)
}
