// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockdigest - the content digest that identifies a block
//
// a block is identified by the SHA3-256 digest of its serialized
// bytes; the all-zero digest is reserved as the "no block" sentinel
// and never occurs as the digest of real data
package blockdigest
