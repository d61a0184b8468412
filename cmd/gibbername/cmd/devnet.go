// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"net"
	"os"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/devnet"
)

var (
	listen       string
	rebindPolicy string
	devnetConfig devnet.Config
)

var devnetCmd = &cobra.Command{
	Use:   "devnet [options]",
	Short: "Runs an in-memory network for local development",
	Long: `
Runs a single-process sequencer for the selected network and serves it
over JSON-RPC. State is kept in memory and lost on exit.

$ gibbername devnet --listen 127.0.0.1:9660
$ gibbername --network local lookup wallet7

`,
	Args: cobra.NoArgs,
	RunE: devnetFunc,
}

func init() {
	devnetConfig.SetDefaults()
	devnetCmd.Flags().StringVar(
		&listen,
		"listen",
		"127.0.0.1:9660",
		"address to serve JSON-RPC on",
	)
	devnetCmd.Flags().StringVar(
		&rebindPolicy,
		"rebind-policy",
		string(chain.RebindImmutable),
		"whether owners may rebind their names (immutable or owner)",
	)
	devnetCmd.Flags().DurationVar(
		&devnetConfig.BuildInterval,
		"build-interval",
		devnetConfig.BuildInterval,
		"how often pending transactions are put in a block",
	)
	devnetCmd.Flags().IntVar(
		&devnetConfig.MempoolSize,
		"mempool-size",
		devnetConfig.MempoolSize,
		"maximum number of pending transactions",
	)
}

func devnetFunc(cmd *cobra.Command, args []string) error {
	policy, err := chain.ParseRebindPolicy(rebindPolicy)
	if err != nil {
		return err
	}
	g := chain.DefaultGenesis(cfg.Network)
	g.RebindPolicy = policy

	node, err := devnet.New(g, memdb.New(), devnetConfig)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	ready := make(chan net.Addr, 1)
	go func() {
		select {
		case addr := <-ready:
			fmt.Fprintln(os.Stderr, color.GreenString("serving %s (rebind policy %s) at http://%s", g.Network, g.RebindPolicy, addr))
		case <-ctx.Done():
		}
	}()
	return devnet.Serve(ctx, node, listen, ready)
}
