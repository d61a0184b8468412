// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [options] <name>",
	Short: "Prints the data bound to a name",
	Long: `
Prints the data bound to a name in the latest finalized state.

$ gibbername --network testnet lookup wallet7
<<COMMENT
addr:xyz
COMMENT

# Unregistered names are not an error.
$ gibbername --network testnet lookup nobody
<<COMMENT
not found
COMMENT

`,
	RunE: lookupFunc,
}

func lookupFunc(cmd *cobra.Command, args []string) error {
	name, err := getName(args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	r, err := dial(ctx)
	if err != nil {
		return err
	}
	rec, found, err := r.Lookup(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(cmd.OutOrStdout(), "not found")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatBinding(rec.Binding))
	fmt.Fprintln(os.Stderr, color.CyanString("%s is owned by %s on %s", name, rec.Owner, cfg.Network))
	return nil
}
