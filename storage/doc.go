// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the on-disk byte store
//
// maintain a single pool of content-addressed elements in key->value
// form: the key is always the SHA3-256 digest of the value, so a write
// of identical bytes is idempotent
//
// This maintains a LevelDB database with a single table defined by a
// one byte prefix (to leave room for future tables in the same file).
//
// Notes:
// 1. ++     = concatenation of byte data
// 2. digest = 32 byte SHA3-256(data)
//
// Block:  'B' ++ digest -> block bytes
//
// An in-memory implementation of the same interface is provided for
// tests.
package storage
