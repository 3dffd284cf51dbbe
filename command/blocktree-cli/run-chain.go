// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
)

// show a chain block
func runReadBlock(c *cli.Context) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	digest, err := firstDigest(c)
	if nil != err {
		fail(m, err)
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	block, err := st.Tree().Chain().ReadBlock(digest)
	if nil != err {
		fail(m, err)
	}
	if nil == block {
		fail(m, fault.ErrBlockIsNull)
	}

	printJson(m, "block", block)
	return nil
}

// append an opaque chain block
func runWriteBlock(c *cli.Context) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}

	prev := blockdigest.Empty
	if "" != c.String("prev") {
		prev, err = digestArg(c.String("prev"))
		if nil != err {
			fail(m, err)
		}
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	digest, err := st.Tree().Chain().WriteBlock(blockchain.Arguments{
		PrevBlock: prev,
		Data:      []byte(c.Args().First()),
	}, nil)
	if nil != err {
		fail(m, err)
	}

	fmt.Fprintf(m.w, "%s\n", digest)
	return nil
}

// list stored digests, optionally restricted to a hex prefix
func runListBlocks(c *cli.Context) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	prefix, err := hexPrefix(c.Args().First())
	if nil != err {
		fail(m, err)
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	printDigests(m, st.Tree().Chain().ListBlocks(prefix))
	return nil
}

// count stored blocks
func runCountBlocks(c *cli.Context) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	fmt.Fprintf(m.w, "%d\n", st.Tree().Chain().CountBlocks())
	return nil
}

// validate the chain ending at a block
func runValidateBlockchain(c *cli.Context) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	digest, err := firstDigest(c)
	if nil != err {
		fail(m, err)
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	report := st.Tree().Chain().Validate(digest, nil)
	printJson(m, "report", report)
	if !report.IsValid {
		exitwithstatus.Exit(fault.ExitValidation)
	}
	return nil
}
