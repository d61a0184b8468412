// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	log "github.com/inconshreveable/log15"
)

type Block struct {
	Prnt   ids.ID         `serialize:"true" json:"parent"`
	Tmstmp int64          `serialize:"true" json:"timestamp"`
	Hght   uint64         `serialize:"true" json:"height"`
	Txs    []*Transaction `serialize:"true" json:"txs"`

	id    ids.ID
	t     time.Time
	bytes []byte
}

// GenesisBlock is the deterministic height-0 block of a network.
func GenesisBlock(g *Genesis) (*Block, error) {
	b := &Block{
		Prnt: ids.ID{},
		Hght: 0,
		Txs:  []*Transaction{},
	}
	// Mix the network into the genesis ID so networks never share block IDs.
	copy(b.Prnt[:], g.Network)
	if err := b.init(); err != nil {
		return nil, err
	}
	return b, nil
}

func NewBlock(parent *Block, tmstmp int64, txs []*Transaction) (*Block, error) {
	b := &Block{
		Prnt:   parent.ID(),
		Tmstmp: tmstmp,
		Hght:   parent.Height() + 1,
		Txs:    txs,
	}
	if err := b.init(); err != nil {
		return nil, err
	}
	return b, nil
}

func ParseBlock(source []byte) (*Block, error) {
	b := new(Block)
	if _, err := Unmarshal(source, b); err != nil {
		return nil, err
	}
	for _, tx := range b.Txs {
		if err := tx.Init(); err != nil {
			return nil, err
		}
	}
	b.bytes = source
	id, err := ids.ToID(hashing.ComputeHash256(b.bytes))
	if err != nil {
		return nil, err
	}
	b.id = id
	b.t = time.Unix(b.Tmstmp, 0)
	return b, nil
}

func (b *Block) init() error {
	bytes, err := Marshal(b)
	if err != nil {
		return err
	}
	b.bytes = bytes
	id, err := ids.ToID(hashing.ComputeHash256(b.bytes))
	if err != nil {
		return err
	}
	b.id = id
	b.t = time.Unix(b.Tmstmp, 0)
	return nil
}

// Apply executes every transaction in order against [db] and returns one
// receipt per transaction. A failing transaction leaves no writes behind but
// does not fail the block. Nothing is written to [db] if Apply errors.
func (b *Block) Apply(g *Genesis, db database.Database) ([]*Receipt, error) {
	blockDB := versiondb.New(db)
	receipts := make([]*Receipt, 0, len(b.Txs))
	for _, tx := range b.Txs {
		r := &Receipt{
			TxID:     tx.ID(),
			BlockID:  b.id,
			Height:   b.Hght,
			Accepted: true,
		}
		txDB := versiondb.New(blockDB)
		if err := tx.Execute(g, txDB, uint64(b.Tmstmp)); err != nil {
			log.Debug("tx execution failed", "txID", tx.ID(), "err", err)
			txDB.Abort()
			r.Accepted = false
			r.Reason = err.Error()
		} else if err := txDB.Commit(); err != nil {
			blockDB.Abort()
			return nil, err
		}
		if err := PutReceipt(blockDB, r); err != nil {
			blockDB.Abort()
			return nil, err
		}
		receipts = append(receipts, r)
	}
	if err := SetLastAccepted(blockDB, b); err != nil {
		blockDB.Abort()
		return nil, err
	}
	if err := blockDB.Commit(); err != nil {
		return nil, err
	}
	return receipts, nil
}

func (b *Block) ID() ids.ID { return b.id }

func (b *Block) Parent() ids.ID { return b.Prnt }

func (b *Block) Bytes() []byte { return b.bytes }

func (b *Block) Height() uint64 { return b.Hght }

func (b *Block) Timestamp() time.Time { return b.t }
