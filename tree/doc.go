// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tree - the parent link overlay
//
// chains form a forest; a parent reference from one chain root to a
// block of another chain links the forest into a tree
//
// the overlay wraps every chain payload with a fixed-width header:
//
//	32 bytes  parent digest, all zero when null
//	1 byte    layer tag
//	remainder payload (opaque to this layer)
//
// non-root blocks may carry a parent value but it is not consulted as
// a tree edge: child scans only consider chain roots
package tree
