// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"unicode"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ava-labs/gibbername/client"
	"github.com/ava-labs/gibbername/registry"
)

// signalContext is canceled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func dial(ctx context.Context) (*registry.Registrar, error) {
	uri, err := cfg.EndpointFor(cfg.Network)
	if err != nil {
		return nil, err
	}
	cli, err := client.Dial(ctx, cfg.Network, uri, cfg.ClientOptions()...)
	if err != nil {
		return nil, err
	}
	return registry.New(ctx, cli)
}

func getName(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly 1 argument, got %d", len(args))
	}
	return args[0], nil
}

// formatBinding prints printable text as is and anything else as hex.
func formatBinding(b []byte) string {
	if !utf8.Valid(b) {
		return hexutil.Encode(b)
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return hexutil.Encode(b)
		}
	}
	return string(b)
}
