// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/bitmark-inc/logger"

	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/cache"
	"github.com/blocktree-inc/blocktreed/fault"
)

// Tree - tree operations layered over a blockchain
type Tree struct {
	chain *blockchain.Blockchain
	cache cache.Cache
	log   *logger.L
}

// Arguments - caller supplied fields for a tree write
type Arguments struct {
	PrevBlock blockdigest.Digest
	Parent    blockdigest.Digest
	Layer     uint8 // LayerBlocktree when zero
	Data      []byte
}

// New - create a tree over a blockchain
func New(chain *blockchain.Blockchain) *Tree {
	return &Tree{
		chain: chain,
		cache: chain.Cache(),
		log:   logger.New("tree"),
	}
}

// Chain - access the underlying blockchain (for layers above)
func (tr *Tree) Chain() *blockchain.Blockchain {
	return tr.chain
}

// WriteBlock - append a block carrying a tree header
//
// a chain root written under a parent is recorded in the parent's
// child list cache; non-root blocks are not tree edges so the list is
// left untouched for them
func (tr *Tree) WriteBlock(args Arguments, options *blockchain.Options) (blockdigest.Digest, error) {

	validate := nil == options || !options.SkipValidation

	layer := args.Layer
	if NullLayer == layer {
		layer = LayerBlocktree
	}

	if validate && !args.Parent.IsEmpty() {
		if nil == tr.chain.ReadRawBlock(args.Parent) {
			return blockdigest.Empty, fault.ErrInvalidParentBlock
		}
	}

	data, err := PackHeader(args.Parent, layer, args.Data)
	if nil != err {
		return blockdigest.Empty, err
	}

	digest, err := tr.chain.WriteBlock(blockchain.Arguments{
		PrevBlock: args.PrevBlock,
		Data:      data,
	}, options)
	if nil != err {
		return blockdigest.Empty, err
	}

	if args.PrevBlock.IsEmpty() && !args.Parent.IsEmpty() {
		tr.cache.Push(args.Parent, cache.ChildBlocks, digest[:])
	}

	return digest, nil
}

// ReadBlock - fetch a block and unpack its tree header
//
// nil for the null digest and for digests not present in the store
func (tr *Tree) ReadBlock(digest blockdigest.Digest) (*Block, error) {
	chainBlock, err := tr.chain.ReadBlock(digest)
	if nil != err {
		return nil, err
	}
	if nil == chainBlock {
		return nil, nil
	}
	return fromChainBlock(chainBlock)
}

// ParentBlock - the parent reference of a block
//
// the zero digest is returned for a block with no parent
func (tr *Tree) ParentBlock(digest blockdigest.Digest) (blockdigest.Digest, error) {
	block, err := tr.ReadBlock(digest)
	if nil != err {
		return blockdigest.Empty, err
	}
	if nil == block {
		return blockdigest.Empty, fault.ErrBlockIsNull
	}
	return block.Parent, nil
}

// ParentScan - the block and all its ancestors by parent links
//
// each step reads the current block, appends it and follows its parent
// reference; the parent value of a non-root block is surfaced as-is,
// so callers normally start at a chain root
func (tr *Tree) ParentScan(digest blockdigest.Digest) ([]*Block, error) {
	result := make([]*Block, 0, 4)

	current := digest
	for !current.IsEmpty() {
		block, err := tr.ReadBlock(current)
		if nil != err {
			return nil, err
		}
		if nil == block {
			if 0 == len(result) {
				return nil, fault.ErrBlockIsNull
			}
			return nil, fault.ErrInvalidParentBlock
		}
		result = append(result, block)
		current = block.Parent
	}

	return result, nil
}

// ChildScan - all chain roots whose parent is the given block
//
// the child list cache is consulted first; a miss performs a full
// store scan and writes the authoritative list back
func (tr *Tree) ChildScan(digest blockdigest.Digest) ([]*Block, error) {

	if hits, ok := tr.cache.GetList(digest, cache.ChildBlocks); ok {
		result := make([]*Block, 0, len(hits))
		for _, hit := range hits {
			var child blockdigest.Digest
			if nil != blockdigest.DigestFromBytes(&child, hit) {
				continue
			}
			block, err := tr.ReadBlock(child)
			if nil != err {
				return nil, err
			}
			if nil != block {
				result = append(result, block)
			}
		}
		return result, nil
	}

	result := make([]*Block, 0, 4)
	children := make([][]byte, 0, 4)

	tr.chain.Store().Map(func(key blockdigest.Digest, data []byte) {
		chainBlock, err := blockchain.PackedBlock(data).Unpack()
		if nil != err || !chainBlock.IsChainRoot() {
			return
		}
		block, err := fromChainBlock(chainBlock)
		if nil != err {
			// a chain root without a tree header belongs to no tree
			return
		}
		if block.Parent == digest {
			result = append(result, block)
			children = append(children, append([]byte{}, key[:]...))
		}
	})

	tr.cache.SetList(digest, cache.ChildBlocks, children)
	return result, nil
}

// Validate - validate the chain containing start and every ancestor chain
//
// runs chain validation from start, then follows parent references up
// to the tree root accumulating the block count; a dangling parent
// reports missingParentBlock
func (tr *Tree) Validate(start blockdigest.Digest) blockchain.Report {

	report := blockchain.Report{
		IsValid: true,
	}

	current := start
	for !current.IsEmpty() {
		chainReport := tr.chain.Validate(current, nil)
		report.BlockCount += chainReport.BlockCount
		if !chainReport.IsValid {
			report.IsValid = false
			report.Reason = chainReport.Reason
			report.Block = chainReport.Block
			return report
		}

		root := tr.chain.RootBlock(current)
		rootBlock, err := tr.ReadBlock(root)
		if nil != err || nil == rootBlock {
			report.IsValid = false
			report.Reason = blockchain.ReasonMissingBlock
			report.Block = root
			return report
		}

		parent := rootBlock.Parent
		if parent.IsEmpty() {
			return report
		}
		if nil == tr.chain.ReadRawBlock(parent) {
			report.IsValid = false
			report.Reason = blockchain.ReasonMissingParentBlock
			report.Block = parent
			return report
		}
		current = parent
	}

	return report
}
