// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wallet implements transaction signers.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mitchellh/go-homedir"

	"github.com/ava-labs/gibbername/chain"
)

var (
	ErrDenied       = errors.New("signing denied")
	ErrWalletExists = errors.New("wallet already exists")
)

// Signer is the capability to authorize a transaction. Implementations may
// block on user interaction.
type Signer interface {
	// Address of the account that pays for and is recorded as the sender of
	// signed transactions.
	Address() common.Address
	Sign(ctx context.Context, utx chain.UnsignedTransaction) ([]byte, error)
}

var _ Signer = &KeySigner{}

// KeySigner signs with an in-memory secp256k1 key.
type KeySigner struct {
	priv *ecdsa.PrivateKey
	addr common.Address
}

func NewKeySigner(priv *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{
		priv: priv,
		addr: crypto.PubkeyToAddress(priv.PublicKey),
	}
}

func (k *KeySigner) Address() common.Address { return k.addr }

func (k *KeySigner) Sign(ctx context.Context, utx chain.UnsignedTransaction) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dh, err := chain.DigestHash(utx)
	if err != nil {
		return nil, err
	}
	return chain.Sign(dh, k.priv)
}

// Load reads a hex encoded private key from [path]. A leading "~" is
// expanded to the home directory.
func Load(path string) (*KeySigner, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	priv, err := crypto.LoadECDSA(p)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet %s: %w", p, err)
	}
	return NewKeySigner(priv), nil
}

// Create generates a new key and writes it to [path]. It refuses to replace
// an existing file.
func Create(path string) (*KeySigner, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(p); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrWalletExists, p)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// TODO: encrypt key at rest
	priv, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	if err := crypto.SaveECDSA(p, priv); err != nil {
		return nil, err
	}
	return NewKeySigner(priv), nil
}
