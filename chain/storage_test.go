// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/gibbername/parser"
)

func TestPrefixReceiptKey(t *testing.T) {
	t.Parallel()

	id := ids.GenerateTestID()
	tt := []struct {
		txID ids.ID
		key  []byte
	}{
		{
			txID: id,
			key:  append([]byte{receiptPrefix, parser.ByteDelimiter}, id[:]...),
		},
	}
	for i, tv := range tt {
		vv := PrefixReceiptKey(tv.txID)
		if !bytes.Equal(tv.key, vv) {
			t.Fatalf("#%d: value expected %q, got %q", i, tv.key, vv)
		}
	}
}

func TestPrefixBlockKey(t *testing.T) {
	t.Parallel()

	id := ids.GenerateTestID()
	tt := []struct {
		blkID    ids.ID
		blockKey []byte
	}{
		{
			blkID:    id,
			blockKey: append([]byte{blockPrefix, parser.ByteDelimiter}, id[:]...),
		},
	}
	for i, tv := range tt {
		vv := PrefixBlockKey(tv.blkID)
		if !bytes.Equal(tv.blockKey, vv) {
			t.Fatalf("#%d: value expected %q, got %q", i, tv.blockKey, vv)
		}
	}
}

func TestPutGetRecord(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	defer db.Close()

	kd, err := KeyDeriverFor(DefaultKeyVersion)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := GetRecord(db, kd, "alice"); ok || err != nil {
		t.Fatalf("unexpected ok %v, err %v", ok, err)
	}

	r := &Record{Name: "alice", Owner: testOwner, Binding: []byte("v")}
	if err := PutRecord(db, kd, r); err != nil {
		t.Fatal(err)
	}
	got, ok, err := GetRecord(db, kd, "alice")
	if !ok || err != nil {
		t.Fatalf("unexpected ok %v, err %v", ok, err)
	}
	if !got.Equal(r) {
		t.Fatalf("record expected %+v, got %+v", r, got)
	}

	// corrupt the stored value
	if err := db.Put(kd.Key("alice"), []byte{0x00, 0x09}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := GetRecord(db, kd, "alice"); !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("unexpected error %v, expected %v", err, ErrUnknownVersion)
	}
}
