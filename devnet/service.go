// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package devnet

import (
	"net/http"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/client"
)

// Service exposes a [Node] over JSON-RPC. Method names follow the
// [client.Namespace] prefix.
type Service struct {
	node *Node
}

func (svc *Service) Ping(_ *http.Request, _ *struct{}, reply *client.PingReply) (err error) {
	log.Debug("ping")
	reply.Success = true
	return nil
}

func (svc *Service) Genesis(_ *http.Request, _ *struct{}, reply *client.GenesisReply) (err error) {
	reply.Genesis = svc.node.Genesis()
	return nil
}

func (svc *Service) LastAccepted(_ *http.Request, _ *struct{}, reply *client.LastAcceptedReply) (err error) {
	blk := svc.node.LastAccepted()
	reply.Height = blk.Height()
	reply.BlockID = blk.ID()
	return nil
}

func (svc *Service) QueryLatest(_ *http.Request, args *client.QueryLatestArgs, reply *client.QueryLatestReply) (err error) {
	reply.Value, reply.Exists, err = svc.node.Query(args.Key)
	return err
}

func (svc *Service) IssueTx(_ *http.Request, args *client.IssueTxArgs, reply *client.IssueTxReply) error {
	tx, err := chain.ParseTx(args.Tx)
	if err != nil {
		return err
	}
	if err := svc.node.Submit(tx); err != nil {
		return err
	}
	reply.TxID = tx.ID()
	return nil
}

func (svc *Service) TxStatus(_ *http.Request, args *client.TxStatusArgs, reply *client.TxStatusReply) (err error) {
	reply.Receipt, reply.Finalized, reply.Pending, err = svc.node.TxStatus(args.TxID)
	return err
}
