// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gibbername/parser"
)

var _ UnsignedTransaction = &RegisterTx{}

// RegisterTx binds [Binding] to [Name] on behalf of [Owner]. The signer pays
// for the transaction and need not be the owner.
type RegisterTx struct {
	*BaseTx `serialize:"true" json:"baseTx"`

	Name    string         `serialize:"true" json:"name"`
	Owner   common.Address `serialize:"true" json:"owner"`
	Binding []byte         `serialize:"true" json:"binding"`
}

// Verify performs the checks that do not depend on chain state.
func (r *RegisterTx) Verify(g *Genesis) error {
	if err := parser.CheckName(r.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	if r.Owner == (common.Address{}) {
		return ErrEmptyOwner
	}
	if uint64(len(r.Binding)) > g.MaxBindingSize {
		return fmt.Errorf("%w: %d > %d", ErrBindingTooBig, len(r.Binding), g.MaxBindingSize)
	}
	return nil
}

func (r *RegisterTx) Execute(t *TransactionContext) error {
	if err := r.Verify(t.Genesis); err != nil {
		return err
	}
	kd, err := t.Genesis.KeyDeriver()
	if err != nil {
		return err
	}
	prev, has, err := GetRecord(t.Database, kd, r.Name)
	if err != nil {
		return err
	}
	if has {
		// First writer wins unless the network lets the owner rebind.
		if t.Genesis.RebindPolicy != RebindOwner || prev.Owner != r.Owner {
			return ErrNameTaken
		}
		if prev.Owner != t.Sender {
			return ErrUnauthorized
		}
	}
	return PutRecord(t.Database, kd, &Record{
		Name:    r.Name,
		Owner:   r.Owner,
		Binding: r.Binding,
	})
}

func (r *RegisterTx) Copy() UnsignedTransaction {
	binding := make([]byte, len(r.Binding))
	copy(binding, r.Binding)
	return &RegisterTx{
		BaseTx:  r.BaseTx.Copy(),
		Name:    r.Name,
		Owner:   r.Owner,
		Binding: binding,
	}
}
