// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/client"
	"github.com/ava-labs/gibbername/devnet"
	"github.com/ava-labs/gibbername/wallet"
)

var _ client.Client = &nodeClient{}

// nodeClient drives a [devnet.Node] in process. Each SubmitAndWait builds a
// block right away.
type nodeClient struct {
	node *devnet.Node

	// raw overrides what QueryLatest returns for a key.
	raw      map[string][]byte
	hidden   bool
	queryErr error

	// beforeSubmit runs inside SubmitAndWait before the transaction is
	// issued.
	beforeSubmit func()
	submitErr    error
	submitted    int
}

func newNodeClient(t *testing.T, g *chain.Genesis) *nodeClient {
	t.Helper()
	cfg := devnet.Config{}
	cfg.SetDefaults()
	node, err := devnet.New(g, memdb.New(), cfg)
	require.NoError(t, err)
	return &nodeClient{node: node, raw: map[string][]byte{}}
}

func (c *nodeClient) Network() chain.NetworkID { return c.node.Genesis().Network }

func (c *nodeClient) Ping(context.Context) (bool, error) { return true, nil }

func (c *nodeClient) Genesis(context.Context) (*chain.Genesis, error) {
	return c.node.Genesis(), nil
}

func (c *nodeClient) Accepted(context.Context) (ids.ID, error) {
	return c.node.LastAccepted().ID(), nil
}

func (c *nodeClient) QueryLatest(_ context.Context, key []byte) ([]byte, bool, error) {
	if c.queryErr != nil {
		return nil, false, c.queryErr
	}
	if c.hidden {
		return nil, false, nil
	}
	if v, ok := c.raw[string(key)]; ok {
		return v, true, nil
	}
	return c.node.Query(key)
}

func (c *nodeClient) IssueTx(_ context.Context, b []byte) (ids.ID, error) {
	tx, err := chain.ParseTx(b)
	if err != nil {
		return ids.Empty, err
	}
	if err := c.node.Submit(tx); err != nil {
		return ids.Empty, err
	}
	c.submitted++
	return tx.ID(), nil
}

func (c *nodeClient) TxStatus(_ context.Context, txID ids.ID) (*chain.Receipt, bool, error) {
	r, finalized, pending, err := c.node.TxStatus(txID)
	if err == nil && !finalized && !pending {
		return nil, false, client.ErrTxUnknown
	}
	return r, finalized, err
}

func (c *nodeClient) SubmitAndWait(ctx context.Context, tx *chain.Transaction) (*chain.Receipt, error) {
	if c.submitErr != nil {
		return nil, c.submitErr
	}
	if c.beforeSubmit != nil {
		c.beforeSubmit()
	}
	txID, err := c.IssueTx(ctx, tx.Bytes())
	if err != nil {
		return nil, err
	}
	if _, _, err := c.node.BuildBlock(); err != nil {
		return nil, err
	}
	r, finalized, err := c.TxStatus(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !finalized {
		return nil, errors.New("not finalized")
	}
	return r, nil
}

// register finalizes a registration directly, bypassing the registrar.
func (c *nodeClient) register(t *testing.T, signer *wallet.KeySigner, name string, owner common.Address, binding string) *chain.Receipt {
	t.Helper()
	ctx := context.Background()
	blkID, err := c.Accepted(ctx)
	require.NoError(t, err)
	utx := &chain.RegisterTx{
		BaseTx:  &chain.BaseTx{BlockID: blkID, Magic: c.node.Genesis().Magic},
		Name:    name,
		Owner:   owner,
		Binding: []byte(binding),
	}
	sig, err := signer.Sign(ctx, utx)
	require.NoError(t, err)
	tx := chain.NewTx(utx, sig)
	require.NoError(t, tx.Init())
	require.NoError(t, c.node.Submit(tx))
	_, receipts, err := c.node.BuildBlock()
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	return receipts[0]
}

func newSigner(t *testing.T) *wallet.KeySigner {
	t.Helper()
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	return wallet.NewKeySigner(priv)
}

var _ wallet.Signer = &mockSigner{}

// mockSigner mocks the wallet.Signer interface
type mockSigner struct {
	mock.Mock
}

// Address mocks the Address method
func (m *mockSigner) Address() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

// Sign mocks the Sign method
func (m *mockSigner) Sign(ctx context.Context, utx chain.UnsignedTransaction) ([]byte, error) {
	args := m.Called(ctx, utx)
	sig, _ := args.Get(0).([]byte)
	return sig, args.Error(1)
}
