// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client implements the gibbername chain client facade.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"
	"github.com/ethereum/go-ethereum/common/hexutil"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/gibbername/chain"
)

const (
	// Endpoint is the HTTP path the JSON-RPC service is served on.
	Endpoint = "/rpc"
	// Namespace prefixes every JSON-RPC method name.
	Namespace = "gibbername"

	DefaultRequestTimeout = 30 * time.Second
	DefaultPollInterval   = time.Second
)

// Client defines the operations the registry needs from a chain. It is safe
// for concurrent use; transaction ordering is up to the chain.
type Client interface {
	// Network is the identity this client was connected with.
	Network() chain.NetworkID

	// Pings the chain.
	Ping(ctx context.Context) (bool, error)
	// Returns the network genesis.
	Genesis(ctx context.Context) (*chain.Genesis, error)
	// Accepted fetches the ID of the last accepted block.
	Accepted(ctx context.Context) (ids.ID, error)

	// QueryLatest reads [key] as of the latest finalized state.
	QueryLatest(ctx context.Context, key []byte) (value []byte, exists bool, err error)

	// Issues the transaction and returns the transaction ID.
	IssueTx(ctx context.Context, tx []byte) (ids.ID, error)
	// TxStatus returns the receipt of a finalized transaction, or false if it
	// is still pending. It returns [ErrTxUnknown] if the transaction is
	// neither finalized nor pending.
	TxStatus(ctx context.Context, txID ids.ID) (*chain.Receipt, bool, error)
	// SubmitAndWait issues [tx] and blocks until it is finalized.
	SubmitAndWait(ctx context.Context, tx *chain.Transaction) (*chain.Receipt, error)
}

type Op struct {
	requestTimeout time.Duration
	pollInterval   time.Duration
}

type OpOption func(*Op)

func (op *Op) applyOpts(opts []OpOption) {
	for _, opt := range opts {
		opt(op)
	}
}

func WithRequestTimeout(d time.Duration) OpOption {
	return func(op *Op) { op.requestTimeout = d }
}

func WithPollInterval(d time.Duration) OpOption {
	return func(op *Op) { op.pollInterval = d }
}

// New creates a client for [network] served at [uri] without contacting it.
func New(network chain.NetworkID, uri string, opts ...OpOption) Client {
	ret := &Op{
		requestTimeout: DefaultRequestTimeout,
		pollInterval:   DefaultPollInterval,
	}
	ret.applyOpts(opts)
	req := rpc.NewEndpointRequester(
		uri,
		Endpoint,
		Namespace,
		ret.requestTimeout,
	)
	return &client{
		network:      network,
		req:          req,
		pollInterval: ret.pollInterval,
	}
}

// Dial connects to [uri] and confirms it serves [network].
func Dial(ctx context.Context, network chain.NetworkID, uri string, opts ...OpOption) (Client, error) {
	if !network.Valid() {
		return nil, fmt.Errorf("%w: %q", chain.ErrUnknownNetwork, network)
	}
	cli := New(network, uri, opts...)
	ok, err := cli.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotConnected, uri, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s: ping failed", ErrNotConnected, uri)
	}
	g, err := cli.Genesis(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotConnected, uri, err)
	}
	if g.Network != network || g.Magic != network.Magic() {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrNetworkMismatch, network, g.Network)
	}
	log.Debug("connected", "network", network, "uri", uri)
	return cli, nil
}

type client struct {
	network      chain.NetworkID
	req          rpc.EndpointRequester
	pollInterval time.Duration
}

// send runs a request on its own goroutine so the caller can give up on it
// through [ctx]. An abandoned request still completes in the background.
func (cli *client) send(ctx context.Context, method string, args interface{}, reply interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		done <- cli.req.SendRequest(method, args, reply)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (cli *client) Network() chain.NetworkID { return cli.network }

func (cli *client) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	if err := cli.send(ctx, "ping", nil, resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) Genesis(ctx context.Context) (*chain.Genesis, error) {
	resp := new(GenesisReply)
	if err := cli.send(ctx, "genesis", nil, resp); err != nil {
		return nil, err
	}
	if resp.Genesis == nil {
		return nil, errors.New("empty genesis")
	}
	return resp.Genesis, nil
}

func (cli *client) Accepted(ctx context.Context) (ids.ID, error) {
	resp := new(LastAcceptedReply)
	if err := cli.send(ctx, "lastAccepted", nil, resp); err != nil {
		return ids.Empty, err
	}
	return resp.BlockID, nil
}

func (cli *client) QueryLatest(ctx context.Context, key []byte) ([]byte, bool, error) {
	resp := new(QueryLatestReply)
	if err := cli.send(
		ctx,
		"queryLatest",
		&QueryLatestArgs{Key: key},
		resp,
	); err != nil {
		if ctx.Err() != nil {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	return resp.Value, resp.Exists, nil
}

func (cli *client) IssueTx(ctx context.Context, d []byte) (ids.ID, error) {
	resp := new(IssueTxReply)
	if err := cli.send(
		ctx,
		"issueTx",
		&IssueTxArgs{Tx: d},
		resp,
	); err != nil {
		return ids.Empty, err
	}
	return resp.TxID, nil
}

func (cli *client) TxStatus(ctx context.Context, txID ids.ID) (*chain.Receipt, bool, error) {
	resp := new(TxStatusReply)
	if err := cli.send(
		ctx,
		"txStatus",
		&TxStatusArgs{TxID: txID},
		resp,
	); err != nil {
		return nil, false, err
	}
	if !resp.Finalized && !resp.Pending {
		return nil, false, fmt.Errorf("%w: %s", ErrTxUnknown, txID)
	}
	return resp.Receipt, resp.Finalized, nil
}

func (cli *client) SubmitAndWait(ctx context.Context, tx *chain.Transaction) (*chain.Receipt, error) {
	txID, err := cli.IssueTx(ctx, tx.Bytes())
	if err != nil {
		return nil, err
	}
	log.Debug("issued transaction", "txID", txID)
	return PollTx(ctx, cli, txID, cli.pollInterval)
}

// PollTx waits until [txID] is finalized. It gives up with [ErrTxUnknown]
// once the chain no longer holds the transaction. Other status errors are
// logged and retried until [ctx] is done.
func PollTx(ctx context.Context, cli Client, txID ids.ID, interval time.Duration) (*chain.Receipt, error) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		r, finalized, err := cli.TxStatus(ctx, txID)
		switch {
		case errors.Is(err, ErrTxUnknown):
			return nil, err
		case err != nil && ctx.Err() == nil:
			log.Warn("polling transaction failed", "txID", txID, "err", err)
		case finalized && r == nil:
			return nil, fmt.Errorf("transaction %s finalized without a receipt", txID)
		case finalized:
			return r, nil
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s not finalized: %w", txID, ctx.Err())
		}
	}
}

type PingReply struct {
	Success bool `serialize:"true" json:"success"`
}

type GenesisReply struct {
	Genesis *chain.Genesis `serialize:"true" json:"genesis"`
}

type LastAcceptedReply struct {
	Height  uint64 `serialize:"true" json:"height"`
	BlockID ids.ID `serialize:"true" json:"blockId"`
}

type QueryLatestArgs struct {
	Key hexutil.Bytes `serialize:"true" json:"key"`
}

type QueryLatestReply struct {
	Exists bool          `serialize:"true" json:"exists"`
	Value  hexutil.Bytes `serialize:"true" json:"value"`
}

type IssueTxArgs struct {
	Tx hexutil.Bytes `serialize:"true" json:"tx"`
}

type IssueTxReply struct {
	TxID ids.ID `serialize:"true" json:"txId"`
}

type TxStatusArgs struct {
	TxID ids.ID `serialize:"true" json:"txId"`
}

type TxStatusReply struct {
	Finalized bool           `serialize:"true" json:"finalized"`
	Pending   bool           `serialize:"true" json:"pending"`
	Receipt   *chain.Receipt `serialize:"true" json:"receipt"`
}
