// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/blocktree-inc/blocktreed/blockdigest"
)

// Slot - the cache slots used by the chain and tree layers
type Slot string

// slots
const (
	Next        Slot = "next"
	RootBlock   Slot = "rootBlock"
	HeadBlock   Slot = "headBlock"
	ChildBlocks Slot = "childBlocks"
)

// Cache - hint cache keyed by (block digest, slot)
type Cache interface {

	// Get - fetch a single value; false on miss
	Get(digest blockdigest.Digest, slot Slot) ([]byte, bool)

	// Set - store a single value
	Set(digest blockdigest.Digest, slot Slot, value []byte)

	// GetList - fetch a list value; false on miss
	GetList(digest blockdigest.Digest, slot Slot) ([][]byte, bool)

	// SetList - store a list value
	SetList(digest blockdigest.Digest, slot Slot, values [][]byte)

	// Push - append to a list value, only when the list is already cached
	Push(digest blockdigest.Digest, slot Slot, value []byte)
}

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 15 * time.Minute
)

// go-cache backed implementation
type memoryCache struct {
	c *gocache.Cache
}

// New - create an expiring in-process cache
func New() Cache {
	return &memoryCache{
		c: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func cacheKey(digest blockdigest.Digest, slot Slot) string {
	return string(slot) + ":" + digest.String()
}

func (m *memoryCache) Get(digest blockdigest.Digest, slot Slot) ([]byte, bool) {
	obj, found := m.c.Get(cacheKey(digest, slot))
	if !found {
		return nil, false
	}
	value, ok := obj.([]byte)
	if !ok {
		return nil, false
	}
	return value, true
}

func (m *memoryCache) Set(digest blockdigest.Digest, slot Slot, value []byte) {
	m.c.Set(cacheKey(digest, slot), value, gocache.DefaultExpiration)
}

func (m *memoryCache) GetList(digest blockdigest.Digest, slot Slot) ([][]byte, bool) {
	obj, found := m.c.Get(cacheKey(digest, slot))
	if !found {
		return nil, false
	}
	values, ok := obj.([][]byte)
	if !ok {
		return nil, false
	}
	return values, true
}

func (m *memoryCache) SetList(digest blockdigest.Digest, slot Slot, values [][]byte) {
	m.c.Set(cacheKey(digest, slot), values, gocache.DefaultExpiration)
}

func (m *memoryCache) Push(digest blockdigest.Digest, slot Slot, value []byte) {
	key := cacheKey(digest, slot)
	obj, found := m.c.Get(key)
	if !found {
		// never materialise a partial list: an absent list means the
		// next scan computes the authoritative answer
		return
	}
	values, ok := obj.([][]byte)
	if !ok {
		return
	}
	m.c.Set(key, append(values, value), gocache.DefaultExpiration)
}

// no-op implementation

type disabledCache struct{}

// Disabled - a cache that never hits
var Disabled Cache = disabledCache{}

func (disabledCache) Get(blockdigest.Digest, Slot) ([]byte, bool)      { return nil, false }
func (disabledCache) Set(blockdigest.Digest, Slot, []byte)             {}
func (disabledCache) GetList(blockdigest.Digest, Slot) ([][]byte, bool) { return nil, false }
func (disabledCache) SetList(blockdigest.Digest, Slot, [][]byte)       {}
func (disabledCache) Push(blockdigest.Digest, Slot, []byte)            {}
