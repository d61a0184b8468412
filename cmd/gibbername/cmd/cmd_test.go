// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/devnet"
)

func TestFormatBinding(t *testing.T) {
	tt := []struct {
		b        []byte
		expected string
	}{
		{b: []byte("addr:xyz"), expected: "addr:xyz"},
		{b: []byte{}, expected: ""},
		{b: []byte{0xff, 0x00}, expected: "0xff00"},
		{b: []byte("line\nbreak"), expected: "0x6c696e650a627265616b"},
	}
	for i, tv := range tt {
		if s := formatBinding(tv.b); s != tv.expected {
			t.Fatalf("#%d: expected %q, got %q", i, tv.expected, s)
		}
	}
}

// The commands share package state, so this runs them in sequence.
func TestCommands(t *testing.T) {
	require := require.New(t)

	cfg := devnet.Config{}
	cfg.SetDefaults()
	cfg.BuildInterval = 20 * time.Millisecond
	node, err := devnet.New(chain.DefaultGenesis(chain.Local), memdb.New(), cfg)
	require.NoError(err)
	h, err := devnet.NewHandler(node)
	require.NoError(err)
	srv := httptest.NewServer(h)
	defer srv.Close()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		t := time.NewTicker(cfg.BuildInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				_, _, _ = node.BuildBlock()
			case <-stop:
				return
			}
		}
	}()

	walletPath := filepath.Join(t.TempDir(), "wallet.pk")
	run := func(args ...string) (string, error) {
		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetArgs(append([]string{
			"--network", "local",
			"--endpoint", srv.URL,
			"--wallet-path", walletPath,
		}, args...))
		err := rootCmd.Execute()
		return strings.TrimSpace(out.String()), err
	}

	out, err := run("lookup", "wallet7")
	require.NoError(err)
	require.Equal("not found", out)

	addr, err := run("create")
	require.NoError(err)
	require.True(strings.HasPrefix(addr, "0x"))
	_, err = run("create")
	require.Error(err)

	out, err = run("register", "wallet7", "--binding", "addr:xyz", "--yes")
	require.NoError(err)
	require.Equal("wallet7", out)

	out, err = run("lookup", "wallet7")
	require.NoError(err)
	require.Equal("addr:xyz", out)

	_, err = run("register", "wallet7", "--binding", "addr:abc", "--yes", "--owner", "0x00000000000000000000000000000000000000aa")
	require.Error(err)
	require.Contains(err.Error(), "already taken")

	_, err = run("lookup", "two words")
	require.Error(err)

	out, err = run("version")
	require.NoError(err)
	require.Equal("gibbername@v0.1.0", out)
}
