// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cmd implements the gibbername commands.
package cmd

import (
	"os"

	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/client"
	"github.com/ava-labs/gibbername/cmd/gibbername/version"
	"github.com/ava-labs/gibbername/config"
)

var (
	cfgFile string
	network = chain.Local

	v   = viper.New()
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:               "gibbername",
		Short:             "Gibbername registry CLI",
		SuggestFor:        []string{"gibbername", "gibber"},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		lookupCmd,
		registerCmd,
		createCmd,
		devnetCmd,
		version.NewCommand(),
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default: "+config.DefaultPath+")",
	)
	pf.Var(
		&network,
		"network",
		"network to use (mainnet, testnet or local)",
	)
	pf.String(
		"endpoint",
		"",
		"RPC endpoint, overrides endpoints.<network> from the config",
	)
	pf.Duration(
		"request-timeout",
		client.DefaultRequestTimeout,
		"timeout of a single RPC request",
	)
	pf.String(
		"wallet-path",
		"",
		"private key file (default: wallet_path from the config)",
	)
	pf.String(
		"log-level",
		log.LvlWarn.String(),
		"log level (crit, error, warn, info, debug)",
	)

	_ = v.BindPFlag("network", pf.Lookup("network"))
	_ = v.BindPFlag("endpoint", pf.Lookup("endpoint"))
	_ = v.BindPFlag("request_timeout", pf.Lookup("request-timeout"))
	_ = v.BindPFlag("wallet_path", pf.Lookup("wallet-path"))
	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.Setup(v, cfgFile); err != nil {
		return err
	}
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	lvl, err := log.LvlFromString(c.LogLevel)
	if err != nil {
		return err
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.LogfmtFormat())))
	cfg = c
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
