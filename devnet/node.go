// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package devnet runs a single-process sequencer for a gibbername network.
// It orders transactions, applies them serially and reports finality. It is
// meant for local development and tests.
package devnet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/mempool"
)

var (
	ErrStaleBlockID  = errors.New("block ID is not recent")
	ErrInvalidConfig = errors.New("invalid config")
)

type Node struct {
	genesis *chain.Genesis
	config  Config

	// [l] guards everything below it.
	l            sync.RWMutex
	db           database.Database
	mempool      *mempool.Mempool
	lastAccepted *chain.Block
	recent       []ids.ID
	recentSet    ids.Set
}

// New opens the state of [g]'s network inside [db]. Each network lives under
// its own prefix so several nodes can share one database.
func New(g *chain.Genesis, db database.Database, cfg Config) (*Node, error) {
	if err := g.Verify(); err != nil {
		return nil, err
	}
	if cfg.MempoolSize < 1 || cfg.MaxBlockTxs < 1 || cfg.RecentBlocks < 1 ||
		cfg.MaxBlockSize <= chain.BlockHeaderSize || cfg.MaxBlockSize > chain.MaxBlockSize {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidConfig, cfg)
	}
	n := &Node{
		genesis:   g,
		config:    cfg,
		db:        prefixdb.New([]byte(g.Network), db),
		mempool:   mempool.New(cfg.MempoolSize),
		recentSet: ids.Set{},
	}

	has, err := chain.HasLastAccepted(n.db)
	if err != nil {
		return nil, err
	}
	if !has {
		gb, err := chain.GenesisBlock(g)
		if err != nil {
			return nil, err
		}
		if err := chain.SetLastAccepted(n.db, gb); err != nil {
			return nil, err
		}
		n.accept(gb)
		log.Info("initialized network", "network", g.Network, "genesis", gb.ID())
		return n, nil
	}

	blkID, err := chain.GetLastAccepted(n.db)
	if err != nil {
		return nil, err
	}
	blk, err := chain.GetBlock(n.db, blkID)
	if err != nil {
		return nil, err
	}
	n.lastAccepted = blk

	// Rebuild the recent window from the tip backwards.
	window := []ids.ID{}
	for cur := blk; len(window) < cfg.RecentBlocks; {
		window = append(window, cur.ID())
		if cur.Height() == 0 {
			break
		}
		if cur, err = chain.GetBlock(n.db, cur.Parent()); err != nil {
			return nil, err
		}
	}
	for i := len(window) - 1; i >= 0; i-- {
		n.recent = append(n.recent, window[i])
		n.recentSet.Add(window[i])
	}
	log.Info("loaded network", "network", g.Network, "height", blk.Height(), "lastAccepted", blkID)
	return n, nil
}

func (n *Node) Genesis() *chain.Genesis { return n.genesis }

func (n *Node) LastAccepted() *chain.Block {
	n.l.RLock()
	defer n.l.RUnlock()
	return n.lastAccepted
}

// Query reads [key] from the latest accepted state.
func (n *Node) Query(key []byte) ([]byte, bool, error) {
	n.l.RLock()
	defer n.l.RUnlock()
	return chain.GetValue(n.db, key)
}

// Receipt returns the receipt of [txID] once it is in an accepted block.
func (n *Node) Receipt(txID ids.ID) (*chain.Receipt, bool, error) {
	n.l.RLock()
	defer n.l.RUnlock()
	return chain.GetReceipt(n.db, txID)
}

// TxStatus is [Receipt] plus whether [txID] is still waiting in the
// mempool. A transaction that is neither finalized nor pending was never
// submitted here or has been dropped.
func (n *Node) TxStatus(txID ids.ID) (r *chain.Receipt, finalized bool, pending bool, err error) {
	n.l.RLock()
	defer n.l.RUnlock()
	r, finalized, err = chain.GetReceipt(n.db, txID)
	if err != nil || finalized {
		return r, finalized, false, err
	}
	return nil, false, n.mempool.Has(txID), nil
}

// Submit queues an initialized transaction for the next block.
func (n *Node) Submit(tx *chain.Transaction) error {
	if tx.Size()+chain.BlockHeaderSize > n.config.MaxBlockSize {
		return fmt.Errorf("%w: %d bytes", chain.ErrTxTooBig, tx.Size())
	}
	if err := tx.UnsignedTransaction.ExecuteBase(n.genesis); err != nil {
		return err
	}
	if v, ok := tx.UnsignedTransaction.(interface{ Verify(*chain.Genesis) error }); ok {
		if err := v.Verify(n.genesis); err != nil {
			return err
		}
	}

	n.l.Lock()
	defer n.l.Unlock()
	if !n.recentSet.Contains(tx.GetBlockID()) {
		return fmt.Errorf("%w: %s", ErrStaleBlockID, tx.GetBlockID())
	}
	if n.mempool.Has(tx.ID()) {
		return chain.ErrDuplicateTx
	}
	has, err := chain.HasReceipt(n.db, tx.ID())
	if err != nil {
		return err
	}
	if has {
		return chain.ErrDuplicateTx
	}
	if err := n.mempool.Push(tx); err != nil {
		return err
	}
	log.Debug("submitted tx", "txID", tx.ID(), "sender", tx.Sender(), "pending", n.mempool.Len())
	return nil
}

// BuildBlock puts pending transactions, oldest first, into a block and
// accepts it. It stops at the first transaction that would push the block
// past [Config.MaxBlockSize]. It returns nil if nothing is pending.
func (n *Node) BuildBlock() (*chain.Block, []*chain.Receipt, error) {
	n.l.Lock()
	defer n.l.Unlock()

	pruned := n.mempool.Prune(n.recentSet.Contains)
	for _, tx := range pruned {
		log.Debug("dropped stale tx", "txID", tx.ID(), "blkID", tx.GetBlockID())
	}
	if n.mempool.Len() == 0 {
		return nil, nil, nil
	}

	txs := make([]*chain.Transaction, 0, n.config.MaxBlockTxs)
	size := uint64(chain.BlockHeaderSize)
	for n.mempool.Len() > 0 && len(txs) < n.config.MaxBlockTxs {
		next := n.mempool.PeekOldest()
		if size+next.Size() > n.config.MaxBlockSize {
			break
		}
		size += next.Size()
		txs = append(txs, n.mempool.PopOldest())
	}
	tmstmp := time.Now().Unix()
	if parent := n.lastAccepted.Timestamp().Unix(); tmstmp < parent {
		tmstmp = parent
	}
	blk, err := chain.NewBlock(n.lastAccepted, tmstmp, txs)
	if err != nil {
		n.requeue(txs)
		return nil, nil, err
	}
	receipts, err := blk.Apply(n.genesis, n.db)
	if err != nil {
		// Nothing was written.
		n.requeue(txs)
		return nil, nil, err
	}
	n.accept(blk)
	log.Debug("accepted block", "blkID", blk.ID(), "height", blk.Height(), "txs", len(txs), "size", len(blk.Bytes()))
	return blk, receipts, nil
}

// requeue gives [txs] another chance after a failed build. Their arrival
// order among themselves is kept.
func (n *Node) requeue(txs []*chain.Transaction) {
	for _, tx := range txs {
		if err := n.mempool.Push(tx); err != nil {
			log.Warn("dropped tx", "txID", tx.ID(), "err", err)
		}
	}
}

// accept assumes [n.l] is held or [n] is not yet shared.
func (n *Node) accept(blk *chain.Block) {
	n.lastAccepted = blk
	n.recent = append(n.recent, blk.ID())
	n.recentSet.Add(blk.ID())
	for len(n.recent) > n.config.RecentBlocks {
		n.recentSet.Remove(n.recent[0])
		n.recent = n.recent[1:]
	}
}

// Run builds a block every [BuildInterval] until [ctx] is done. A failed
// build is logged and retried on the next tick.
func (n *Node) Run(ctx context.Context) error {
	t := time.NewTicker(n.config.BuildInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if _, _, err := n.BuildBlock(); err != nil {
				log.Error("failed to build block", "err", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
