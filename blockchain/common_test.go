// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/cache"
	"github.com/blocktree-inc/blocktreed/chronology"
	"github.com/blocktree-inc/blocktreed/storage"
)

const logFileName = "test.log"

// common test setup routines

// a blockchain over an in-memory store with a manual clock
func setup(t *testing.T) (*blockchain.Blockchain, *chronology.StoppedClock) {
	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      logFileName,
		Size:      50000,
		Count:     10,
	})

	clock := chronology.NewStopped(1000)
	bc := blockchain.New(storage.NewMemory(), cache.New(), clock)
	return bc, clock
}

// post test cleanup
func teardown() {
	logger.Finalise()
	os.RemoveAll(logFileName)
}

// build a chain of count blocks, advancing the clock per block
//
// returns all digests in write order
func buildChain(t *testing.T, bc *blockchain.Blockchain, clock *chronology.StoppedClock, count int) []blockdigest.Digest {
	t.Helper()

	digests := make([]blockdigest.Digest, 0, count)
	prev := blockdigest.Empty
	for i := 0; i < count; i += 1 {
		clock.Advance(1)
		digest, err := bc.WriteBlock(blockchain.Arguments{
			PrevBlock: prev,
			Data:      []byte{byte(i)},
		}, nil)
		if nil != err {
			t.Fatalf("write block %d error: %s", i, err)
		}
		digests = append(digests, digest)
		prev = digest
	}
	return digests
}
