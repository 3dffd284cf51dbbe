// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/cache"
	"github.com/blocktree-inc/blocktreed/chronology"
	"github.com/blocktree-inc/blocktreed/storage"
	"github.com/blocktree-inc/blocktreed/tree"
)

const logFileName = "test.log"

// a tree over an in-memory store with a manual clock
func setup(t *testing.T) (*tree.Tree, *chronology.StoppedClock) {
	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      logFileName,
		Size:      50000,
		Count:     10,
	})

	clock := chronology.NewStopped(1000)
	tr := tree.New(blockchain.New(storage.NewMemory(), cache.New(), clock))
	return tr, clock
}

// post test cleanup
func teardown() {
	logger.Finalise()
	os.RemoveAll(logFileName)
}
