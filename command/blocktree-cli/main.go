// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/blocktree-inc/blocktreed/command/blocktree-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "blocktree-cli"
	app.Usage = "inspect and mutate a blocktree store"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "blocktree-cli.json",
			Usage: " configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "initialise blocktree-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "database, d",
					Value: "",
					Usage: "*database directory `PATH`",
				},
				cli.StringFlag{
					Name:  "description, D",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: " using existing hex `KEY`",
				},
			},
			Action: runSetup,
		},
		{
			Name:   "generate",
			Usage:  "generate key pair, will not store in config file",
			Action: runGenerate,
		},
		{
			Name:      "read-block",
			Usage:     "show a chain block",
			ArgsUsage: "DIGEST",
			Action:    runReadBlock,
		},
		{
			Name:      "write-block",
			Usage:     "append an opaque block",
			ArgsUsage: "DATA",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "prev, p",
					Value: "",
					Usage: " previous block `DIGEST`",
				},
			},
			Action: runWriteBlock,
		},
		{
			Name:      "list-blocks",
			Usage:     "list stored block digests",
			ArgsUsage: "[HEX-PREFIX]",
			Action:    runListBlocks,
		},
		{
			Name:   "count-blocks",
			Usage:  "count stored blocks",
			Action: runCountBlocks,
		},
		{
			Name:      "validate-blockchain",
			Usage:     "validate the chain ending at a block",
			ArgsUsage: "DIGEST",
			Action:    runValidateBlockchain,
		},
		{
			Name:      "read-tree-block",
			Usage:     "show a block with its tree header",
			ArgsUsage: "DIGEST",
			Action:    runReadTreeBlock,
		},
		{
			Name:      "write-tree-block",
			Usage:     "append a block with a tree header",
			ArgsUsage: "DATA",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "prev, p",
					Value: "",
					Usage: " previous block `DIGEST`",
				},
				cli.StringFlag{
					Name:  "parent, P",
					Value: "",
					Usage: " parent block `DIGEST`",
				},
			},
			Action: runWriteTreeBlock,
		},
		{
			Name:      "parent-scan",
			Usage:     "list a block and its ancestors",
			ArgsUsage: "DIGEST",
			Action:    runParentScan,
		},
		{
			Name:      "child-scan",
			Usage:     "list the child chain roots of a block",
			ArgsUsage: "DIGEST",
			Action:    runChildScan,
		},
		{
			Name:      "get-parent-block",
			Usage:     "show the parent digest of a block",
			ArgsUsage: "DIGEST",
			Action:    runGetParentBlock,
		},
		{
			Name:      "validate-blocktree",
			Usage:     "validate a chain and its ancestor chains",
			ArgsUsage: "DIGEST",
			Action:    runValidateBlocktree,
		},
		{
			Name:      "install-root",
			Usage:     "install the trust anchor into an empty store",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "zone-name, z",
					Value: "root zone",
					Usage: " root zone `NAME`",
				},
				cli.StringFlag{
					Name:  "zone-key, k",
					Value: "",
					Usage: " root zone write `ACCOUNT` [identity account]",
				},
			},
			Action: runInstallRoot,
		},
		{
			Name:      "create-zone",
			Usage:     "create a zone under a zone or the root",
			ArgsUsage: "PARENT-DIGEST",
			Flags:     createFlags,
			Action:    runCreateZone,
		},
		{
			Name:      "create-identity",
			Usage:     "create an identity under a zone",
			ArgsUsage: "PARENT-DIGEST",
			Flags:     createFlags,
			Action:    runCreateIdentity,
		},
		{
			Name:      "create-collection",
			Usage:     "create a collection under an identity or zone",
			ArgsUsage: "PARENT-DIGEST",
			Flags:     createFlags,
			Action:    runCreateCollection,
		},
		{
			Name:      "set-keys",
			Usage:     "append a key grant to a chain",
			ArgsUsage: "CHAIN-DIGEST",
			Flags:     keyFlags,
			Action:    runSetKeys,
		},
		{
			Name:      "revoke-keys",
			Usage:     "close key validity windows on a chain",
			ArgsUsage: "CHAIN-DIGEST",
			Flags:     keyFlags,
			Action:    runRevokeKeys,
		},
		{
			Name:      "set-options",
			Usage:     "append named metadata to a chain",
			ArgsUsage: "CHAIN-DIGEST KEY=VALUE...",
			Action:    runSetOptions,
		},
		{
			Name:      "add-record",
			Usage:     "append a data record to a collection",
			ArgsUsage: "COLLECTION-DIGEST KEY=VALUE...",
			Action:    runAddRecord,
		},
		{
			Name:      "validate-signature",
			Usage:     "verify a block signature and its authority",
			ArgsUsage: "DIGEST",
			Action:    runValidateSignature,
		},
		{
			Name:      "signature-trace",
			Usage:     "list the key set blocks authorizing a block",
			ArgsUsage: "DIGEST",
			Action:    runSignatureTrace,
		},
	}

	m := metadata{
		e: os.Stderr,
		w: os.Stdout,
	}
	app.Metadata = map[string]interface{}{
		"config": &m,
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}

	// if a config file was modified, save the result
	if m.save {
		err := m.config.Save(m.file)
		if nil != err {
			exitwithstatus.Message("cannot save configuration: %s", err)
		}
	}
}
