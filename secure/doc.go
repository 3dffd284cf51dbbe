// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package secure - the typed, signature-authenticated layer
//
// typed records, authorized key sets with temporal validity and
// signature chains verified up to the single root trust anchor
//
// every mutation resolves its authorized key set by walking parent
// chain roots upward: at each level the newest key grant for the
// signing key decides, so a closed validity window revokes without
// rewriting history; historical signatures stay verifiable because
// validation checks windows against the signed block's own timestamp
package secure
