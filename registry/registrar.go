// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/client"
	"github.com/ava-labs/gibbername/wallet"
)

// Registrar claims names. It embeds the [Resolver] it uses for its pre-check
// and its confirmation read.
type Registrar struct {
	*Resolver

	cli     client.Client
	genesis *chain.Genesis
}

// New fetches the network genesis from [cli] and builds a [Registrar] that
// follows its key derivation and rebind policy.
func New(ctx context.Context, cli client.Client) (*Registrar, error) {
	g, err := cli.Genesis(ctx)
	if err != nil {
		return nil, wrap(ErrNotConnected, err)
	}
	return NewRegistrar(cli, g)
}

func NewRegistrar(cli client.Client, g *chain.Genesis) (*Registrar, error) {
	if err := g.Verify(); err != nil {
		return nil, err
	}
	kd, err := g.KeyDeriver()
	if err != nil {
		return nil, err
	}
	return &Registrar{
		Resolver: NewResolver(cli, kd),
		cli:      cli,
		genesis:  g,
	}, nil
}

func (r *Registrar) Genesis() *chain.Genesis { return r.genesis }

// Register binds [binding] to [name] for [owner] and returns [name] once the
// chain has finalized that exact record. It never reports success for a
// transaction that was merely submitted.
//
// Retrying after an error other than [ErrAlreadyTaken] is safe: an already
// finalized identical record is detected by the pre-check and returned
// without a new transaction.
func (r *Registrar) Register(
	ctx context.Context,
	owner common.Address,
	name string,
	binding []byte,
	signer wallet.Signer,
) (string, error) {
	utx := &chain.RegisterTx{
		BaseTx:  &chain.BaseTx{},
		Name:    name,
		Owner:   owner,
		Binding: binding,
	}
	if err := utx.Verify(r.genesis); err != nil {
		return "", err
	}

	prev, found, err := r.Lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if found {
		switch {
		case prev.Owner == owner && bytes.Equal(prev.Binding, binding):
			log.Info("name already registered with the same binding", "name", name, "owner", owner)
			return name, nil
		case prev.Owner != owner || r.genesis.RebindPolicy != chain.RebindOwner:
			return "", fmt.Errorf("%w: %q is owned by %s", ErrAlreadyTaken, name, prev.Owner)
		case signer.Address() != owner:
			return "", wrap(ErrAlreadyTaken, fmt.Errorf("%w: only %s may rebind %q", chain.ErrUnauthorized, owner, name))
		}
		log.Info("rebinding name", "name", name, "owner", owner)
	}

	blkID, err := r.cli.Accepted(ctx)
	if err != nil {
		return "", err
	}
	utx.SetBlockID(blkID)
	utx.SetMagic(r.genesis.Magic)

	sig, err := signer.Sign(ctx, utx)
	if err != nil {
		return "", wrap(ErrSigningFailed, err)
	}
	tx := chain.NewTx(utx, sig)
	if err := tx.Init(); err != nil {
		return "", wrap(ErrSigningFailed, err)
	}
	if tx.Sender() != signer.Address() {
		return "", wrap(ErrSigningFailed, chain.ErrInvalidSignature)
	}

	log.Debug("submitting registration", "txID", tx.ID(), "name", name, "owner", owner, "sender", tx.Sender())
	receipt, err := r.cli.SubmitAndWait(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("registration %s outcome unknown, re-resolve before retrying: %w", tx.ID(), err)
	}
	log.Debug("registration finalized", "txID", tx.ID(), "accepted", receipt.Accepted, "height", receipt.Height)

	cur, found, err := r.Lookup(ctx, name)
	if err != nil {
		return "", err
	}
	switch {
	case !found:
		return "", fmt.Errorf("%w: tx %s (%s)", ErrUnconfirmed, tx.ID(), receipt.Reason)
	case cur.Owner != owner || !bytes.Equal(cur.Binding, binding):
		return "", fmt.Errorf("%w: %q finalized for %s (tx %s: %s)", ErrLostRace, name, cur.Owner, tx.ID(), receipt.Reason)
	}
	if err := client.CheckReceipt(receipt); err != nil {
		// An identical record won the race; the outcome is what we asked for.
		log.Warn("registration record matches despite receipt", "txID", tx.ID(), "err", err)
	}
	return name, nil
}
