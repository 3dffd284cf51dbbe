// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blocktree-inc/blocktreed/command/blocktree-cli/configuration"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/keypair"
)

// save and reload a configuration with one identity
func TestSaveAndLoad(t *testing.T) {
	dir, err := os.Getwd()
	if nil != err {
		t.Fatalf("getwd error: %s", err)
	}
	file := filepath.Join(dir, "test-config.json")
	defer os.RemoveAll(file)

	kp, err := keypair.Generate()
	if nil != err {
		t.Fatalf("generate error: %s", err)
	}

	config := &configuration.Configuration{
		Database:        "test.leveldb",
		DefaultIdentity: "operator",
		Identities: map[string]configuration.Identity{
			"operator": {
				Description: "the test operator",
				Account:     kp.Account().String(),
				PrivateKey:  kp.Raw().PrivateKey,
			},
		},
	}

	if err := config.Save(file); nil != err {
		t.Fatalf("save error: %s", err)
	}

	back, err := configuration.Load(file)
	if nil != err {
		t.Fatalf("load error: %s", err)
	}
	if config.Database != back.Database {
		t.Errorf("database: %q  expected: %q", back.Database, config.Database)
	}

	// the default identity resolves when no name is given
	id, err := back.Identity("")
	if nil != err {
		t.Fatalf("identity error: %s", err)
	}
	if config.Identities["operator"].Account != id.Account {
		t.Errorf("account: %q  expected: %q", id.Account, config.Identities["operator"].Account)
	}

	// the key pair rebuilds from the stored private key
	rebuilt, err := back.KeyPair("operator")
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	if kp.Account().String() != rebuilt.Account().String() {
		t.Error("account changed across save/load")
	}

	_, err = back.Identity("nobody")
	if fault.ErrIdentityNameNotFound != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrIdentityNameNotFound)
	}
}
