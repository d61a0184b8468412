// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gibbername/wallet"
)

const dirModeWrite = 0o700

var createCmd = &cobra.Command{
	Use:   "create [options]",
	Short: "Creates a new wallet key",
	Long: `
Creates a new key at the configured wallet path.
It will error if the key file already exists.

$ gibbername create --wallet-path ~/.gibbername/wallet.pk

`,
	Args: cobra.NoArgs,
	RunE: createFunc,
}

func createFunc(cmd *cobra.Command, args []string) error {
	p, err := homedir.Expand(cfg.WalletPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), dirModeWrite); err != nil {
		return err
	}
	ks, err := wallet.Create(p)
	if errors.Is(err, wallet.ErrWalletExists) {
		// Already found, remind the user they have it
		if existing, lerr := wallet.Load(p); lerr == nil {
			fmt.Fprintln(os.Stderr, color.YellowString("key for %s already exists at %s", existing.Address(), p))
		}
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ks.Address())
	fmt.Fprintln(os.Stderr, color.GreenString("created address %s and saved to %s", ks.Address(), p))
	return nil
}
