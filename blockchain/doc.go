// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain - the content-addressed chain layer
//
// a block is an immutable record identified by the SHA3-256 digest of
// its serialized bytes; the prev link forms per-chain linked lists and
// at most one block may follow any given block (head uniqueness)
//
// wire layout (big-endian):
//
//	1 byte    prev length - 1
//	n bytes   prev digest, or a single zero byte for a chain root
//	8 bytes   nonce
//	8 bytes   timestamp
//	remainder data (opaque to this layer)
//
// the byte store, hint cache and clock are injected; suspension only
// happens at those boundaries so no internal locking is required
package blockchain
