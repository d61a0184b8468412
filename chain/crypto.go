// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
)

const (
	vOffset      = 64
	legacySigAdj = 27

	digestPrefix = "\x19Gibbername Signed Transaction:\n"
)

// DigestHash is the 32-byte hash a signer commits to:
// keccak256(prefix || magic || unsigned tx bytes).
func DigestHash(utx UnsignedTransaction) ([]byte, error) {
	b, err := Marshal(utx)
	if err != nil {
		return nil, err
	}
	magic := make([]byte, 8)
	binary.BigEndian.PutUint64(magic, utx.GetMagic())
	return crypto.Keccak256([]byte(digestPrefix), magic, b), nil
}

func Sign(dh []byte, priv *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(dh, priv)
	if err != nil {
		return nil, err
	}
	sig[vOffset] += legacySigAdj
	return sig, nil
}

func DeriveSender(dh []byte, sig []byte) (*ecdsa.PublicKey, error) {
	if len(sig) != crypto.SignatureLength {
		return nil, ErrInvalidSignature
	}
	// Avoid modifying the signature in place in case it is used elsewhere
	sigcpy := make([]byte, crypto.SignatureLength)
	copy(sigcpy, sig)

	// Support signers that don't apply offset (ex: ledger)
	if sigcpy[vOffset] >= legacySigAdj {
		sigcpy[vOffset] -= legacySigAdj
	}
	pk, err := crypto.SigToPub(dh, sigcpy)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	return pk, nil
}
