// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/blocktree-inc/blocktreed/command/blocktree-cli/configuration"
	"github.com/blocktree-inc/blocktreed/keypair"
)

// create a new configuration file with one identity
func runSetup(c *cli.Context) error {
	m := getMetadata(c)
	m.file = c.GlobalString("config")
	m.verbose = c.GlobalBool("verbose")

	database := c.String("database")
	if "" == database {
		return fmt.Errorf("database is required")
	}
	name := c.GlobalString("identity")
	if "" == name {
		name = "default"
	}

	if _, err := os.Stat(m.file); nil == err {
		return fmt.Errorf("not overwriting existing configuration: %q", m.file)
	}

	kp, err := identityKeyPair(c.String("privateKey"))
	if nil != err {
		return err
	}

	m.config = &configuration.Configuration{
		Database:        database,
		DefaultIdentity: name,
		Identities: map[string]configuration.Identity{
			name: {
				Description: c.String("description"),
				Account:     kp.Account().String(),
				PrivateKey:  kp.Raw().PrivateKey,
			},
		},
	}
	m.save = true

	printJson(m, "configuration", m.config)
	return nil
}

// an existing key or a fresh one
func identityKeyPair(privateKeyHex string) (*keypair.KeyPair, error) {
	if "" != privateKeyHex {
		return keypair.FromPrivateKeyHex(privateKeyHex)
	}
	return keypair.Generate()
}

// generate a key pair without touching the configuration
func runGenerate(c *cli.Context) error {
	m := getMetadata(c)
	m.verbose = c.GlobalBool("verbose")

	kp, err := keypair.Generate()
	if nil != err {
		return err
	}

	printJson(m, "keypair", struct {
		Account    string `json:"account"`
		PublicKey  string `json:"public_key"`
		PrivateKey string `json:"private_key"`
	}{
		Account:    kp.Account().String(),
		PublicKey:  kp.Raw().PublicKey,
		PrivateKey: kp.Raw().PrivateKey,
	})
	return nil
}
