// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blocktree-inc/blocktreed/blockdigest"
)

// keys separate by slot and digest
func TestCacheKey(t *testing.T) {
	one := blockdigest.NewDigest([]byte("one"))
	two := blockdigest.NewDigest([]byte("two"))

	assert.NotEqual(t, cacheKey(one, Next), cacheKey(one, HeadBlock), "slots collide")
	assert.NotEqual(t, cacheKey(one, Next), cacheKey(two, Next), "digests collide")
	assert.Equal(t, cacheKey(one, Next), cacheKey(one, Next), "key is not stable")
}

// a value stored under one type is not returned as the other
func TestTypeConfusion(t *testing.T) {
	c := New()
	digest := blockdigest.NewDigest([]byte("a block"))

	c.Set(digest, Next, digest[:])
	_, ok := c.GetList(digest, Next)
	assert.False(t, ok, "single value surfaced as a list")

	c.SetList(digest, ChildBlocks, [][]byte{digest[:]})
	_, ok = c.Get(digest, ChildBlocks)
	assert.False(t, ok, "list surfaced as a single value")

	// pushing onto the single value slot must not corrupt it
	c.Push(digest, Next, digest[:])
	value, ok := c.Get(digest, Next)
	assert.True(t, ok, "single value lost")
	assert.Equal(t, digest[:], value, "single value changed")
}
