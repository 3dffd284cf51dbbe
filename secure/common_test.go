// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/cache"
	"github.com/blocktree-inc/blocktreed/chronology"
	"github.com/blocktree-inc/blocktreed/keypair"
	"github.com/blocktree-inc/blocktreed/secure"
	"github.com/blocktree-inc/blocktreed/storage"
	"github.com/blocktree-inc/blocktreed/tree"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

const logFileName = "test.log"

// a secure tree over an in-memory store with a manual clock
func setup(t *testing.T) (*secure.SecureTree, *chronology.StoppedClock) {
	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      logFileName,
		Size:      50000,
		Count:     10,
	})

	clock := chronology.NewStopped(1000)
	st := secure.New(tree.New(blockchain.New(storage.NewMemory(), cache.New(), clock)), clock)
	return st, clock
}

// post test cleanup
func teardown() {
	logger.Finalise()
	os.RemoveAll(logFileName)
}

// an installed store with its key holders
type fixture struct {
	st       *secure.SecureTree
	clock    *chronology.StoppedClock
	root     blockdigest.Digest
	rootZone blockdigest.Digest
	rootKey  *keypair.KeyPair
	zoneKey  *keypair.KeyPair
}

// a write-forever key set for one key pair
func writeKeys(t *testing.T, kp *keypair.KeyPair) treerecord.KeySet {
	t.Helper()
	return treerecord.KeySet{
		treerecord.WriteAction: []treerecord.AuthorizedKey{
			{
				Account:   kp.Account(),
				ValidFrom: 0,
				ValidTo:   treerecord.ForeverTimestamp,
			},
		},
	}
}

// install a root and root zone with fresh keys
func install(t *testing.T) *fixture {
	t.Helper()

	st, clock := setup(t)

	rootKey, err := keypair.Generate()
	if nil != err {
		t.Fatalf("generate root key error: %s", err)
	}
	zoneKey, err := keypair.Generate()
	if nil != err {
		t.Fatalf("generate zone key error: %s", err)
	}

	root, rootZone, err := st.InstallRoot(secure.InstallRootArguments{
		RootKeys:     writeKeys(t, rootKey),
		RootZoneKeys: writeKeys(t, zoneKey),
		Options: treerecord.OptionList{
			{Key: "name", Value: "root zone"},
		},
		Signer: secure.NewKeyPairSigner(rootKey),
	})
	if nil != err {
		t.Fatalf("install root error: %s", err)
	}

	return &fixture{
		st:       st,
		clock:    clock,
		root:     root,
		rootZone: rootZone,
		rootKey:  rootKey,
		zoneKey:  zoneKey,
	}
}
