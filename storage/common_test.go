// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/blocktree-inc/blocktreed/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
	logFileName      = "test.log"
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName)
	os.RemoveAll(logFileName)
}

// configure for testing
func setup(t *testing.T) *storage.Pool {
	removeFiles()

	_ = logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      logFileName,
		Size:      50000,
		Count:     10,
	})

	pool, err := storage.NewPool(databaseFileName, false)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	return pool
}

// post test cleanup
func teardown(pool *storage.Pool) {
	pool.Close()
	logger.Finalise()
	removeFiles()
}
