// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package devnet

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
	log "github.com/inconshreveable/log15"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/gibbername/client"
)

const shutdownTimeout = 5 * time.Second

// NewHandler serves [node] at [client.Endpoint].
func NewHandler(node *Node) (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(&Service{node: node}, client.Namespace); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(client.Endpoint, server)
	return mux, nil
}

// Serve listens on [addr] and builds blocks until [ctx] is done or either
// loop fails. [ready], if not nil, receives the bound address.
func Serve(ctx context.Context, node *Node, addr string, ready chan<- net.Addr) error {
	h, err := NewHandler(node)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: h}
	log.Info("serving devnet", "network", node.Genesis().Network, "addr", ln.Addr())
	if ready != nil {
		ready <- ln.Addr()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return node.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
