// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package treerecord - the typed records of the secure layer
//
// every secure payload is a one byte tag, a type specific body and a
// signature envelope; the signature covers the prev and parent digests
// so a record cannot be replayed at another position in the tree
package treerecord
