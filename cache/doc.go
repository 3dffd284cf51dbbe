// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache - the (block, slot) hint cache
//
// every entry is a pure function of the immutable byte store, so a
// stale or missing entry is never an error: readers recompute the
// authoritative answer and write it back
package cache
