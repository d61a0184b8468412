// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/ava-labs/gibbername/chain"
)

var _ Signer = &PromptSigner{}

// PromptSigner asks for confirmation on [in]/[out] before delegating to the
// wrapped signer. Anything but "y" or "yes" denies. Prompts may be issued
// one at a time; a line typed after a cancelled prompt answers the next one.
type PromptSigner struct {
	Signer
	in  *bufio.Reader
	out io.Writer

	start sync.Once
	lines chan string
}

func NewPromptSigner(s Signer, in io.Reader, out io.Writer) *PromptSigner {
	return &PromptSigner{
		Signer: s,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

func (p *PromptSigner) Sign(ctx context.Context, utx chain.UnsignedTransaction) ([]byte, error) {
	fmt.Fprintln(p.out, color.YellowString("about to sign with %s:", p.Address()))
	fmt.Fprintln(p.out, Describe(utx))
	fmt.Fprint(p.out, "sign and send? [y/N]: ")

	p.start.Do(func() {
		p.lines = make(chan string)
		go p.readLines()
	})
	select {
	case a, ok := <-p.lines:
		if !ok || (a != "y" && a != "yes") {
			return nil, ErrDenied
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return p.Signer.Sign(ctx, utx)
}

// readLines is the only reader of [p.in]. It closes [p.lines] once [p.in]
// is exhausted.
func (p *PromptSigner) readLines() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		p.lines <- strings.ToLower(strings.TrimSpace(line))
		if err != nil {
			return
		}
	}
}

// Describe renders [utx] for confirmation prompts.
func Describe(utx chain.UnsignedTransaction) string {
	switch tx := utx.(type) {
	case *chain.RegisterTx:
		return fmt.Sprintf(
			"  register %q\n  owner   %s\n  binding %q\n  block   %s",
			tx.Name, tx.Owner.Hex(), tx.Binding, tx.BlockID,
		)
	default:
		return fmt.Sprintf("  %T", utx)
	}
}
