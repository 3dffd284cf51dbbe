// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/cache"
	"github.com/blocktree-inc/blocktreed/chronology"
	"github.com/blocktree-inc/blocktreed/command/blocktree-cli/configuration"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/secure"
	"github.com/blocktree-inc/blocktreed/storage"
	"github.com/blocktree-inc/blocktreed/tree"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// flag sets shared by several commands
var createFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "name, n",
		Value: "",
		Usage: " display `NAME`",
	},
	cli.StringSliceFlag{
		Name:  "write, w",
		Usage: " embedded write `ACCOUNT` (repeatable)",
	},
	cli.StringSliceFlag{
		Name:  "read, r",
		Usage: " embedded read `ACCOUNT` (repeatable)",
	},
}

var keyFlags = []cli.Flag{
	cli.StringSliceFlag{
		Name:  "write, w",
		Usage: " write `ACCOUNT` (repeatable)",
	},
	cli.StringSliceFlag{
		Name:  "read, r",
		Usage: " read `ACCOUNT` (repeatable)",
	},
}

// fetch the shared metadata record
func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

// load the configuration named by the global flag
func getConfig(c *cli.Context) (*metadata, error) {
	m := getMetadata(c)
	if nil != m.config {
		return m, nil
	}

	m.file = c.GlobalString("config")
	m.verbose = c.GlobalBool("verbose")

	config, err := configuration.Load(m.file)
	if nil != err {
		return nil, err
	}
	m.config = config
	return m, nil
}

// open the layer stack over the configured database
//
// the returned cleanup must run before process exit
func openLayers(m *metadata) (*secure.SecureTree, func(), error) {
	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      "blocktree-cli.log",
		Size:      1048576,
		Count:     5,
	})

	pool, err := storage.NewPool(m.config.Database, false)
	if nil != err {
		logger.Finalise()
		return nil, nil, err
	}

	clock := chronology.Live()
	st := secure.New(tree.New(blockchain.New(pool, cache.New(), clock)), clock)

	return st, func() {
		pool.Close()
		logger.Finalise()
	}, nil
}

// terminate with the exit code for an error
func fail(m *metadata, err error) {
	fmt.Fprintf(m.e, "error: %s\n", err)
	exitwithstatus.Exit(fault.ExitCode(err))
}

// the signer for the selected identity
func getSigner(c *cli.Context, m *metadata) (*secure.KeyPairSigner, error) {
	kp, err := m.config.KeyPair(c.GlobalString("identity"))
	if nil != err {
		return nil, err
	}
	return secure.NewKeyPairSigner(kp), nil
}

// parse a hex digest argument
func digestArg(s string) (blockdigest.Digest, error) {
	if "" == s {
		return blockdigest.Empty, fault.ErrInvalidBlockHash
	}
	return blockdigest.DigestFromHex(s)
}

// the first positional argument as a digest
func firstDigest(c *cli.Context) (blockdigest.Digest, error) {
	return digestArg(c.Args().First())
}

// parse repeatable account flags into a key set valid from validFrom
// with no expiry
func keySetFromFlags(c *cli.Context, validFrom uint64) (treerecord.KeySet, error) {
	keySet := make(treerecord.KeySet)

	parse := func(action treerecord.KeyAction, values []string) error {
		for _, value := range values {
			acc, err := account.AccountFromBase58(value)
			if nil != err {
				return err
			}
			keySet[action] = append(keySet[action], treerecord.AuthorizedKey{
				Account:   acc,
				ValidFrom: validFrom,
				ValidTo:   treerecord.ForeverTimestamp,
			})
		}
		return nil
	}

	if err := parse(treerecord.WriteAction, c.StringSlice("write")); nil != err {
		return nil, err
	}
	if err := parse(treerecord.ReadAction, c.StringSlice("read")); nil != err {
		return nil, err
	}
	return keySet, nil
}

// parse KEY=VALUE positional arguments into an option list
func optionsFromArgs(args []string) (treerecord.OptionList, error) {
	options := make(treerecord.OptionList, 0, len(args))
	for _, arg := range args {
		split := strings.SplitN(arg, "=", 2)
		if 2 != len(split) || "" == split[0] {
			return nil, fmt.Errorf("not a KEY=VALUE pair: %q", arg)
		}
		options = append(options, treerecord.OptionItem{
			Key:   split[0],
			Value: split[1],
		})
	}
	return options, nil
}

// display a structure as indented JSON
func printJson(m *metadata, title string, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fail(m, err)
	}
	if "" != title && m.verbose {
		fmt.Fprintf(m.w, "%s:\n", title)
	}
	fmt.Fprintf(m.w, "%s\n", b)
}

// display a digest list
func printDigests(m *metadata, digests []blockdigest.Digest) {
	for _, digest := range digests {
		fmt.Fprintf(m.w, "%s\n", digest)
	}
}

// parse an optional hex byte prefix
func hexPrefix(s string) ([]byte, error) {
	if "" == s {
		return nil, nil
	}
	return hex.DecodeString(s)
}
