// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "gibbername" looks up and registers gibbernames.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/ava-labs/gibbername/cmd/gibbername/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		color.Red("gibbername failed: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}
