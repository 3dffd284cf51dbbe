// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/tree"
)

// show a block with its tree header
func runReadTreeBlock(c *cli.Context) error {
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

	block, err := st.Tree().ReadBlock(digest)
	if nil != err {
		fail(m, err)
	}
	if nil == block {
		fail(m, fault.ErrBlockIsNull)
	}

	printJson(m, "block", block)
	return nil
}

// append a block with a tree header
func runWriteTreeBlock(c *cli.Context) error {
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
	parent := blockdigest.Empty
	if "" != c.String("parent") {
		parent, err = digestArg(c.String("parent"))
		if nil != err {
			fail(m, err)
		}
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	digest, err := st.Tree().WriteBlock(tree.Arguments{
		PrevBlock: prev,
		Parent:    parent,
		Data:      []byte(c.Args().First()),
	}, nil)
	if nil != err {
		fail(m, err)
	}

	fmt.Fprintf(m.w, "%s\n", digest)
	return nil
}

// list a block and its ancestors
func runParentScan(c *cli.Context) error {
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

	blocks, err := st.Tree().ParentScan(digest)
	if nil != err {
		fail(m, err)
	}

	printJson(m, "blocks", blocks)
	return nil
}

// list the child chain roots of a block
func runChildScan(c *cli.Context) error {
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

	blocks, err := st.Tree().ChildScan(digest)
	if nil != err {
		fail(m, err)
	}

	printJson(m, "blocks", blocks)
	return nil
}

// show the parent digest of a block
func runGetParentBlock(c *cli.Context) error {
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

	parent, err := st.Tree().ParentBlock(digest)
	if nil != err {
		fail(m, err)
	}

	fmt.Fprintf(m.w, "%s\n", parent)
	return nil
}

// validate a chain and every ancestor chain
func runValidateBlocktree(c *cli.Context) error {
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

	report := st.Tree().Validate(digest)
	printJson(m, "report", report)
	if !report.IsValid {
		exitwithstatus.Exit(fault.ExitValidation)
	}
	return nil
}
