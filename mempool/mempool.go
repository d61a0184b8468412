// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mempool holds transactions waiting to be put in a block.
package mempool

import (
	"container/heap"
	"errors"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/gibbername/chain"
)

var ErrFull = errors.New("mempool full")

// txEntry is used to track the arrival order of transactions in the mempool.
type txEntry struct {
	id    ids.ID
	tx    *chain.Transaction
	seq   uint64
	index int
}

// internalTxHeap is a min-heap of pending transactions by [seq]
type internalTxHeap struct {
	items  []*txEntry
	lookup map[ids.ID]*txEntry
}

func newInternalTxHeap(items int) *internalTxHeap {
	return &internalTxHeap{
		items:  make([]*txEntry, 0, items),
		lookup: map[ids.ID]*txEntry{},
	}
}

func (th internalTxHeap) Len() int { return len(th.items) }

func (th internalTxHeap) Less(i, j int) bool {
	return th.items[i].seq < th.items[j].seq
}

func (th internalTxHeap) Swap(i, j int) {
	th.items[i], th.items[j] = th.items[j], th.items[i]
	th.items[i].index = i
	th.items[j].index = j
}

func (th *internalTxHeap) Push(x interface{}) {
	entry := x.(*txEntry)
	entry.index = len(th.items)
	th.items = append(th.items, entry)
	th.lookup[entry.id] = entry
}

func (th *internalTxHeap) Pop() interface{} {
	n := len(th.items)
	item := th.items[n-1]
	th.items[n-1] = nil // avoid memory leak
	th.items = th.items[0 : n-1]
	delete(th.lookup, item.id)
	return item
}

func (th *internalTxHeap) Get(id ids.ID) (*txEntry, bool) {
	entry, ok := th.lookup[id]
	return entry, ok
}

func (th *internalTxHeap) Has(id ids.ID) bool {
	_, has := th.Get(id)
	return has
}

// Mempool orders transactions first come, first served. It is not safe for
// concurrent use.
type Mempool struct {
	maxSize int
	nextSeq uint64
	txs     *internalTxHeap
}

func New(maxSize int) *Mempool {
	return &Mempool{
		maxSize: maxSize,
		txs:     newInternalTxHeap(maxSize),
	}
}

// Push adds [tx] unless it is already pending. New transactions are refused
// when the mempool is full so earlier arrivals keep their place.
func (th *Mempool) Push(tx *chain.Transaction) error {
	txID := tx.ID()
	// Don't add duplicates
	if th.Has(txID) {
		return nil
	}
	if th.Len() >= th.maxSize {
		return ErrFull
	}
	heap.Push(th.txs, &txEntry{
		id:  txID,
		tx:  tx,
		seq: th.nextSeq,
	})
	th.nextSeq++
	return nil
}

// Assumes there is non-zero items in [Mempool]
func (th *Mempool) PeekOldest() *chain.Transaction {
	return th.txs.items[0].tx
}

// Assumes there is non-zero items in [Mempool]
func (th *Mempool) PopOldest() *chain.Transaction {
	return heap.Pop(th.txs).(*txEntry).tx
}

func (th *Mempool) Remove(id ids.ID) *chain.Transaction {
	entry, ok := th.txs.Get(id)
	if !ok {
		return nil
	}
	return heap.Remove(th.txs, entry.index).(*txEntry).tx
}

// Prune drops every transaction whose block ID is no longer [valid].
func (th *Mempool) Prune(valid func(ids.ID) bool) []*chain.Transaction {
	toRemove := []ids.ID{}
	for _, txE := range th.txs.items {
		if !valid(txE.tx.GetBlockID()) {
			toRemove = append(toRemove, txE.id)
		}
	}
	removed := make([]*chain.Transaction, 0, len(toRemove))
	for _, txID := range toRemove {
		removed = append(removed, th.Remove(txID))
	}
	return removed
}

func (th *Mempool) Len() int {
	return th.txs.Len()
}

func (th *Mempool) Get(id ids.ID) (*chain.Transaction, bool) {
	txEntry, ok := th.txs.Get(id)
	if !ok {
		return nil, false
	}
	return txEntry.tx, true
}

func (th *Mempool) Has(id ids.ID) bool {
	return th.txs.Has(id)
}
