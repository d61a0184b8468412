// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// integration implements the integration tests.
package integration_test

import (
	"context"
	"crypto/ecdsa"
	"flag"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fatih/color"
	log "github.com/inconshreveable/log15"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/ava-labs/gibbername/chain"
	"github.com/ava-labs/gibbername/client"
	"github.com/ava-labs/gibbername/devnet"
	"github.com/ava-labs/gibbername/registry"
	"github.com/ava-labs/gibbername/wallet"
)

func TestIntegration(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "gibbername integration test suites")
}

var (
	requestTimeout time.Duration
	buildInterval  time.Duration
)

func init() {
	flag.DurationVar(
		&requestTimeout,
		"request-timeout",
		30*time.Second,
		"timeout for transaction issuance and confirmation",
	)
	flag.DurationVar(
		&buildInterval,
		"build-interval",
		20*time.Millisecond,
		"block build interval of the embedded networks",
	)
}

var (
	priv   *ecdsa.PrivateKey
	sender common.Address

	priv2   *ecdsa.PrivateKey
	sender2 common.Address

	// every network shares one database
	db        database.Database
	instances map[chain.NetworkID]*instance
)

type instance struct {
	node       *devnet.Node
	httpServer *httptest.Server
	cli        client.Client
	registrar  *registry.Registrar
	cancel     context.CancelFunc
	done       chan error
}

var _ = ginkgo.BeforeSuite(func() {
	var err error
	priv, err = crypto.GenerateKey()
	gomega.Ω(err).Should(gomega.BeNil())
	sender = crypto.PubkeyToAddress(priv.PublicKey)
	log.Debug("generated key", "addr", sender)

	priv2, err = crypto.GenerateKey()
	gomega.Ω(err).Should(gomega.BeNil())
	sender2 = crypto.PubkeyToAddress(priv2.PublicKey)
	log.Debug("generated key", "addr", sender2)

	db = memdb.New()
	instances = map[chain.NetworkID]*instance{}
	for _, n := range chain.Networks() {
		cfg := devnet.Config{}
		cfg.SetDefaults()
		cfg.BuildInterval = buildInterval

		node, err := devnet.New(chain.DefaultGenesis(n), db, cfg)
		gomega.Ω(err).Should(gomega.BeNil())
		h, err := devnet.NewHandler(node)
		gomega.Ω(err).Should(gomega.BeNil())
		httpServer := httptest.NewServer(h)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- node.Run(ctx) }()

		cli, err := client.Dial(
			context.Background(),
			n,
			httpServer.URL,
			client.WithRequestTimeout(requestTimeout),
			client.WithPollInterval(buildInterval/2),
		)
		gomega.Ω(err).Should(gomega.BeNil())
		r, err := registry.New(context.Background(), cli)
		gomega.Ω(err).Should(gomega.BeNil())

		instances[n] = &instance{
			node:       node,
			httpServer: httpServer,
			cli:        cli,
			registrar:  r,
			cancel:     cancel,
			done:       done,
		}
	}
	color.Blue("created %d networks", len(instances))
})

var _ = ginkgo.AfterSuite(func() {
	for _, inst := range instances {
		inst.cancel()
		gomega.Ω(<-inst.done).Should(gomega.BeNil())
		inst.httpServer.Close()
	}
	gomega.Ω(db.Close()).Should(gomega.BeNil())
})

var _ = ginkgo.Describe("[Ping]", func() {
	ginkgo.It("can ping", func() {
		for _, inst := range instances {
			ok, err := inst.cli.Ping(context.Background())
			gomega.Ω(ok).Should(gomega.BeTrue())
			gomega.Ω(err).Should(gomega.BeNil())
		}
	})
})

var _ = ginkgo.Describe("[Network]", func() {
	ginkgo.It("serves its own genesis", func() {
		for n, inst := range instances {
			g, err := inst.cli.Genesis(context.Background())
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(g.Network).Should(gomega.Equal(n))
			gomega.Ω(g.Magic).Should(gomega.Equal(n.Magic()))
		}
	})

	ginkgo.It("refuses a mismatched network", func() {
		_, err := client.Dial(context.Background(), chain.Mainnet, instances[chain.Testnet].httpServer.URL)
		gomega.Ω(err).Should(gomega.MatchError(client.ErrNetworkMismatch))
	})
})

var _ = ginkgo.Describe("[Register]", func() {
	signer := func() wallet.Signer { return wallet.NewKeySigner(priv) }
	signer2 := func() wallet.Signer { return wallet.NewKeySigner(priv2) }

	ginkgo.It("registers and resolves wallet7", func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		r := instances[chain.Local].registrar

		ginkgo.By("ensure nothing registered yet", func() {
			_, found, err := r.Resolve(ctx, "wallet7")
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(found).Should(gomega.BeFalse())
		})

		ginkgo.By("register", func() {
			name, err := r.Register(ctx, sender, "wallet7", []byte("addr:xyz"), signer())
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(name).Should(gomega.Equal("wallet7"))
		})

		ginkgo.By("resolve", func() {
			binding, found, err := r.Resolve(ctx, "wallet7")
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(found).Should(gomega.BeTrue())
			gomega.Ω(binding).Should(gomega.Equal([]byte("addr:xyz")))
		})

		ginkgo.By("refuse another owner", func() {
			_, err := r.Register(ctx, sender2, "wallet7", []byte("addr:abc"), signer2())
			gomega.Ω(err).Should(gomega.MatchError(registry.ErrAlreadyTaken))
		})

		ginkgo.By("other networks do not see the name", func() {
			for _, n := range []chain.NetworkID{chain.Testnet, chain.Mainnet} {
				_, found, err := instances[n].registrar.Resolve(ctx, "wallet7")
				gomega.Ω(err).Should(gomega.BeNil())
				gomega.Ω(found).Should(gomega.BeFalse())
			}
		})

		ginkgo.By("the same name is free on testnet", func() {
			name, err := instances[chain.Testnet].registrar.Register(ctx, sender2, "wallet7", []byte("addr:abc"), signer2())
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(name).Should(gomega.Equal("wallet7"))
		})
	})

	ginkgo.It("refuses a transaction signed for another network", func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		local := instances[chain.Local]
		testnet := instances[chain.Testnet]

		blkID, err := local.cli.Accepted(ctx)
		gomega.Ω(err).Should(gomega.BeNil())
		utx := &chain.RegisterTx{
			BaseTx: &chain.BaseTx{BlockID: blkID, Magic: chain.Local.Magic()},
			Name:   "replayed",
			Owner:  sender,
		}
		sig, err := signer().Sign(ctx, utx)
		gomega.Ω(err).Should(gomega.BeNil())
		tx := chain.NewTx(utx, sig)
		gomega.Ω(tx.Init()).Should(gomega.BeNil())

		_, err = testnet.cli.IssueTx(ctx, tx.Bytes())
		gomega.Ω(err).ShouldNot(gomega.BeNil())

		r, err := local.cli.SubmitAndWait(ctx, tx)
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(client.CheckReceipt(r)).Should(gomega.BeNil())
	})
})
