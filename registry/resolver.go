// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry resolves and registers gibbernames.
package registry

import (
	"context"
	"errors"
	"fmt"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/client"
	"github.com/ava-labs/gibbername/parser"
)

// Resolver answers what is bound to a name using only finalized state. It
// keeps no cache and never retries.
type Resolver struct {
	cli client.Client
	kd  chain.KeyDeriver
}

func NewResolver(cli client.Client, kd chain.KeyDeriver) *Resolver {
	return &Resolver{cli: cli, kd: kd}
}

// Resolve returns the binding of [name], or found=false if it is not
// registered.
func (r *Resolver) Resolve(ctx context.Context, name string) (binding []byte, found bool, err error) {
	rec, found, err := r.Lookup(ctx, name)
	if err != nil || !found {
		return nil, false, err
	}
	return rec.Binding, true, nil
}

// Lookup returns the full registry entry of [name].
func (r *Resolver) Lookup(ctx context.Context, name string) (*chain.Record, bool, error) {
	if err := parser.CheckName(name); err != nil {
		return nil, false, fmt.Errorf("%w: %v", chain.ErrInvalidName, err)
	}
	key := r.kd.Key(name)
	v, exists, err := r.cli.QueryLatest(ctx, key)
	switch {
	case errors.Is(err, client.ErrNotConnected):
		return nil, false, wrap(ErrNotConnected, err)
	case err != nil:
		return nil, false, err
	case !exists:
		log.Debug("name not registered", "name", name, "keyVersion", r.kd.Version())
		return nil, false, nil
	}
	rec, err := chain.DecodeRecord(v)
	if err != nil {
		return nil, false, wrap(ErrDecode, err)
	}
	if rec.Name != name {
		// Key derivation collision or a corrupted store.
		return nil, false, fmt.Errorf("%w: queried %q, found %q", ErrInconsistent, name, rec.Name)
	}
	return rec, true, nil
}
