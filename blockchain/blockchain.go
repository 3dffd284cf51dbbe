// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/cache"
	"github.com/blocktree-inc/blocktreed/chronology"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/keypair"
	"github.com/blocktree-inc/blocktreed/storage"
)

// Blockchain - chain operations over an injected store, cache and clock
type Blockchain struct {
	store storage.Store
	cache cache.Cache
	clock chronology.Clock
	log   *logger.L
}

// Arguments - caller supplied fields for a write
//
// nonce, timestamp and digest are always generated here; there is
// deliberately no way for a caller to supply them
type Arguments struct {
	PrevBlock blockdigest.Digest
	Data      []byte
}

// Options - per operation flags
type Options struct {
	SkipValidation bool
}

// New - create a blockchain over the supplied collaborators
func New(store storage.Store, cch cache.Cache, clock chronology.Clock) *Blockchain {
	return &Blockchain{
		store: store,
		cache: cch,
		clock: clock,
		log:   logger.New("blockchain"),
	}
}

// Store - access the underlying byte store (for layers above)
func (bc *Blockchain) Store() storage.Store {
	return bc.store
}

// Cache - access the hint cache (for layers above)
func (bc *Blockchain) Cache() cache.Cache {
	return bc.cache
}

// WriteBlock - append a block to the store
//
// sequence: read prev -> validate -> write bytes -> update caches; a
// failure before the byte write leaves the store unchanged
func (bc *Blockchain) WriteBlock(args Arguments, options *Options) (blockdigest.Digest, error) {

	validate := nil == options || !options.SkipValidation

	var prev *Block
	if !args.PrevBlock.IsEmpty() {
		prevBytes := bc.store.ReadBytes(args.PrevBlock)
		if nil == prevBytes {
			if validate {
				return blockdigest.Empty, fault.ErrBlockIsNull
			}
		} else {
			unpacked, err := PackedBlock(prevBytes).Unpack()
			if nil != err {
				return blockdigest.Empty, err
			}
			prev = unpacked
		}
	}

	timestamp := bc.clock.Now()

	if validate {
		if nil != prev && timestamp < prev.Timestamp {
			return blockdigest.Empty, fault.ErrInvalidTimestamp
		}
		if !args.PrevBlock.IsEmpty() && !bc.NextBlock(args.PrevBlock).IsEmpty() {
			return blockdigest.Empty, fault.ErrNextBlockExists
		}
	}

	nonce, err := newNonce()
	if nil != err {
		return blockdigest.Empty, err
	}

	block := &Block{
		PrevBlock: args.PrevBlock,
		Nonce:     nonce,
		Timestamp: timestamp,
		Data:      args.Data,
	}

	digest, err := bc.store.WriteBytes(block.Pack())
	if nil != err {
		return blockdigest.Empty, err
	}

	// cache updates happen only after the authoritative write
	if !args.PrevBlock.IsEmpty() {
		bc.cache.Set(args.PrevBlock, cache.Next, digest[:])
	}

	bc.log.Debugf("write: %v  prev: %v", digest, args.PrevBlock)
	return digest, nil
}

// ReadBlock - fetch and unpack a block; nil for the null digest and
// for digests not present in the store
func (bc *Blockchain) ReadBlock(digest blockdigest.Digest) (*Block, error) {
	if digest.IsEmpty() {
		return nil, nil
	}
	data := bc.store.ReadBytes(digest)
	if nil == data {
		return nil, nil
	}
	return PackedBlock(data).Unpack()
}

// ReadRawBlock - fetch the serialized bytes of a block
func (bc *Blockchain) ReadRawBlock(digest blockdigest.Digest) []byte {
	if digest.IsEmpty() {
		return nil
	}
	return bc.store.ReadBytes(digest)
}

// DecodeBlock - unpack externally supplied block bytes
func (bc *Blockchain) DecodeBlock(data []byte) (*Block, error) {
	return PackedBlock(data).Unpack()
}

// ListBlocks - all stored digests starting with a prefix
func (bc *Blockchain) ListBlocks(prefix []byte) []blockdigest.Digest {
	return bc.store.ListKeys(prefix)
}

// CountBlocks - number of stored blocks
func (bc *Blockchain) CountBlocks() int {
	return bc.store.Count()
}

// NextBlock - the unique successor of a block, or the zero digest
func (bc *Blockchain) NextBlock(digest blockdigest.Digest) blockdigest.Digest {
	if digest.IsEmpty() {
		return blockdigest.Empty
	}

	if hit, ok := bc.cache.Get(digest, cache.Next); ok {
		var next blockdigest.Digest
		if nil == blockdigest.DigestFromBytes(&next, hit) {
			return next
		}
	}

	found := bc.store.Find(func(key blockdigest.Digest, data []byte) bool {
		block, err := PackedBlock(data).Unpack()
		if nil != err {
			return false
		}
		return block.PrevBlock == digest
	})
	if nil == found {
		return blockdigest.Empty
	}

	next := PackedBlock(found).Digest()
	bc.cache.Set(digest, cache.Next, next[:])
	return next
}

// RootBlock - walk prev links back to the chain root
//
// the zero digest is returned when any link is missing
func (bc *Blockchain) RootBlock(digest blockdigest.Digest) blockdigest.Digest {
	if digest.IsEmpty() {
		return blockdigest.Empty
	}

	if hit, ok := bc.cache.Get(digest, cache.RootBlock); ok {
		var root blockdigest.Digest
		if nil == blockdigest.DigestFromBytes(&root, hit) {
			return root
		}
	}

	current := digest
	for {
		data := bc.store.ReadBytes(current)
		if nil == data {
			return blockdigest.Empty
		}
		block, err := PackedBlock(data).Unpack()
		if nil != err {
			return blockdigest.Empty
		}
		if block.IsChainRoot() {
			bc.cache.Set(digest, cache.RootBlock, current[:])
			return current
		}
		current = block.PrevBlock
	}
}

// HeadBlock - find the chain root, then walk next links to the tip
//
// a single block chain yields the zero digest: callers treat "no next
// link" as the root being the head; the head is cached on the root
// only when at least one link was observed
func (bc *Blockchain) HeadBlock(digest blockdigest.Digest) blockdigest.Digest {
	root := bc.RootBlock(digest)
	if root.IsEmpty() {
		return blockdigest.Empty
	}

	start := root
	if hit, ok := bc.cache.Get(root, cache.HeadBlock); ok {
		var cached blockdigest.Digest
		if nil == blockdigest.DigestFromBytes(&cached, hit) && bc.store.Has(cached) {
			// a stale head is still on the chain: walking continues from it
			start = cached
		}
	}

	current := start
	for {
		next := bc.NextBlock(current)
		if next.IsEmpty() {
			break
		}
		current = next
	}

	if current == root {
		return blockdigest.Empty
	}

	bc.cache.Set(root, cache.HeadBlock, current[:])
	return current
}

// generate a non-zero random nonce
func newNonce() (uint64, error) {
	for {
		buffer, err := keypair.RandomBytes(NonceSize)
		if nil != err {
			return 0, err
		}
		nonce := binary.BigEndian.Uint64(buffer)
		if 0 != nonce {
			return nonce, nil
		}
	}
}
