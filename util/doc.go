// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package util - serialization helpers
//
// fixed-width big-endian unsigned integer fields and a two byte
// length-prefixed variable field; all wire formats in this repository
// are big-endian
package util
