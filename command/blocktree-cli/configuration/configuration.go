// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - the blocktree-cli configuration file
//
// a small JSON file holding the database location and the named
// signing identities
package configuration

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/keypair"
)

// Configuration - configuration file data format
type Configuration struct {
	Database        string              `json:"database"`
	DefaultIdentity string              `json:"default_identity"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - a named signing key
type Identity struct {
	Description string `json:"description"`
	Account     string `json:"account"`
	PrivateKey  string `json:"private_key"`
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {
	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(filename)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	options := &Configuration{}
	dec := json.NewDecoder(f)
	err = dec.Decode(options)
	if nil != err {
		return nil, err
	}
	if nil == options.Identities {
		options.Identities = make(map[string]Identity)
	}
	return options, nil
}

// Save - write the configuration
func (config *Configuration) Save(filename string) error {
	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if nil != err {
		return err
	}
	data = append(data, '\n')

	return ioutil.WriteFile(filename, data, 0600)
}

// Identity - find identity for a given name, the default when empty
func (config *Configuration) Identity(name string) (*Identity, error) {
	if "" == name {
		name = config.DefaultIdentity
	}
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.ErrIdentityNameNotFound
	}
	return &id, nil
}

// KeyPair - rebuild the signing key pair of an identity
func (config *Configuration) KeyPair(name string) (*keypair.KeyPair, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}
	return keypair.FromPrivateKeyHex(id.PrivateKey)
}
