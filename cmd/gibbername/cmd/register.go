// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gibbername/parser"
	"github.com/ava-labs/gibbername/wallet"
)

var (
	owner      string
	binding    string
	bindingHex bool
	yes        bool
)

var registerCmd = &cobra.Command{
	Use:   "register [options] <name>",
	Short: "Binds data to an unregistered name",
	Long: `
Registers a name by signing and issuing a registration transaction,
then waits until the chain has finalized it.

# The wallet address owns the name unless --owner is set.
$ gibbername --network testnet register wallet7 --binding addr:xyz
<<COMMENT
wallet7
COMMENT

# A name owned by someone else is refused before anything is signed.
$ gibbername --network testnet register wallet7 --binding addr:abc \
  --wallet-path ~/.gibbername/other.pk
<<COMMENT
gibbername failed: name already taken: "wallet7" is owned by 0x...
COMMENT

`,
	RunE: registerFunc,
}

func init() {
	registerCmd.Flags().StringVar(
		&owner,
		"owner",
		"",
		"owner address (default: wallet address)",
	)
	registerCmd.Flags().StringVar(
		&binding,
		"binding",
		"",
		"data to bind to the name",
	)
	registerCmd.Flags().BoolVar(
		&bindingHex,
		"hex",
		false,
		"decode --binding as 0x-prefixed hex",
	)
	registerCmd.Flags().BoolVarP(
		&yes,
		"yes",
		"y",
		false,
		"sign without asking for confirmation",
	)
}

func registerFunc(cmd *cobra.Command, args []string) error {
	name, err := getName(args)
	if err != nil {
		return err
	}
	data := []byte(binding)
	if bindingHex {
		if data, err = hexutil.Decode(binding); err != nil {
			return fmt.Errorf("invalid hex binding: %w", err)
		}
	}

	ks, err := wallet.Load(cfg.WalletPath)
	if err != nil {
		return err
	}
	var signer wallet.Signer = ks
	if !yes {
		signer = wallet.NewPromptSigner(ks, os.Stdin, os.Stderr)
	}
	o := ks.Address()
	if owner != "" {
		if o, err = parser.ParseOwner(owner); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()
	r, err := dial(ctx)
	if err != nil {
		return err
	}
	registered, err := r.Register(ctx, o, name, data, signer)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), registered)
	fmt.Fprintln(os.Stderr, color.GreenString("registered %s for %s on %s", registered, o, cfg.Network))
	return nil
}
