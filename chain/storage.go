// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/gibbername/parser"
)

// 0x0/ (records)
//   -> [key version][name hash] -> encoded record
// 0x1/ (tx receipts)
//   -> [txID]
// 0x2/ (blocks)
//   -> [blockID]

const (
	recordPrefix  = 0x0
	receiptPrefix = 0x1
	blockPrefix   = 0x2
)

var lastAccepted = []byte("last_accepted")

func PrefixReceiptKey(txID ids.ID) []byte {
	return append([]byte{receiptPrefix, parser.ByteDelimiter}, txID[:]...)
}

func PrefixBlockKey(blockID ids.ID) []byte {
	return append([]byte{blockPrefix, parser.ByteDelimiter}, blockID[:]...)
}

// GetValue returns the raw value stored at [k].
func GetValue(db database.KeyValueReader, k []byte) ([]byte, bool, error) {
	v, err := db.Get(k)
	if err == database.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func GetRecord(db database.KeyValueReader, kd KeyDeriver, name string) (*Record, bool, error) {
	v, has, err := GetValue(db, kd.Key(name))
	if err != nil || !has {
		return nil, false, err
	}
	r, err := DecodeRecord(v)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func PutRecord(db database.KeyValueWriter, kd KeyDeriver, r *Record) error {
	b, err := EncodeRecord(r)
	if err != nil {
		return err
	}
	return db.Put(kd.Key(r.Name), b)
}

func HasReceipt(db database.KeyValueReader, txID ids.ID) (bool, error) {
	return db.Has(PrefixReceiptKey(txID))
}

func GetReceipt(db database.KeyValueReader, txID ids.ID) (*Receipt, bool, error) {
	v, has, err := GetValue(db, PrefixReceiptKey(txID))
	if err != nil || !has {
		return nil, false, err
	}
	r := new(Receipt)
	if _, err := Unmarshal(v, r); err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func PutReceipt(db database.KeyValueWriter, r *Receipt) error {
	b, err := Marshal(r)
	if err != nil {
		return err
	}
	return db.Put(PrefixReceiptKey(r.TxID), b)
}

func SetLastAccepted(db database.KeyValueWriter, block *Block) error {
	bid := block.ID()
	if err := db.Put(lastAccepted, bid[:]); err != nil {
		return err
	}
	return db.Put(PrefixBlockKey(bid), block.Bytes())
}

func HasLastAccepted(db database.KeyValueReader) (bool, error) {
	return db.Has(lastAccepted)
}

func GetLastAccepted(db database.KeyValueReader) (ids.ID, error) {
	v, err := db.Get(lastAccepted)
	if err != nil {
		return ids.ID{}, err
	}
	return ids.ToID(v)
}

func GetBlock(db database.KeyValueReader, bid ids.ID) (*Block, error) {
	v, err := db.Get(PrefixBlockKey(bid))
	if err != nil {
		return nil, err
	}
	return ParseBlock(v)
}
