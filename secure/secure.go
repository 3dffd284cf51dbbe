// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"github.com/bitmark-inc/logger"

	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/chronology"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/tree"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// SecureTree - secure operations layered over a tree
type SecureTree struct {
	tree  *tree.Tree
	clock chronology.Clock
	log   *logger.L
}

// Block - a fully parsed secure block
type Block struct {
	Digest    blockdigest.Digest       `json:"digest"`
	TreeBlock *tree.Block              `json:"block"`
	Record    *treerecord.SignedRecord `json:"record"`
}

// Tag - the record type of the block
func (block *Block) Tag() treerecord.TagType {
	return block.Record.RecordTag
}

// New - create a secure tree over a tree and a clock
func New(tr *tree.Tree, clock chronology.Clock) *SecureTree {
	return &SecureTree{
		tree:  tr,
		clock: clock,
		log:   logger.New("secure"),
	}
}

// Tree - access the underlying tree
func (st *SecureTree) Tree() *tree.Tree {
	return st.tree
}

// ReadSecureBlock - fetch a block and parse its typed record
//
// nil for the null digest and for digests not present in the store
func (st *SecureTree) ReadSecureBlock(digest blockdigest.Digest) (*Block, error) {
	treeBlock, err := st.tree.ReadBlock(digest)
	if nil != err {
		return nil, err
	}
	if nil == treeBlock {
		return nil, nil
	}
	if tree.LayerSecure != treeBlock.Layer {
		return nil, fault.ErrInvalidLayer
	}

	record, err := treerecord.Packed(treeBlock.Payload).Unpack()
	if nil != err {
		return nil, err
	}

	return &Block{
		Digest:    digest,
		TreeBlock: treeBlock,
		Record:    record,
	}, nil
}

// chainRoot - the secure block at the root of the chain containing digest
func (st *SecureTree) chainRoot(digest blockdigest.Digest) (*Block, error) {
	root := st.tree.Chain().RootBlock(digest)
	if root.IsEmpty() {
		return nil, fault.ErrBlockIsNull
	}
	block, err := st.ReadSecureBlock(root)
	if nil != err {
		return nil, err
	}
	if nil == block {
		return nil, fault.ErrBlockIsNull
	}
	return block, nil
}

// chainHead - the digest of the last block of the chain containing digest
func (st *SecureTree) chainHead(root blockdigest.Digest) blockdigest.Digest {
	head := st.tree.Chain().HeadBlock(root)
	if head.IsEmpty() {
		// a single block chain: the root is the head
		return root
	}
	return head
}

// keySetBlocks - the blocks carrying key sets that govern a chain,
// newest first ending with the chain root
//
// options records on the chain are skipped; only keys records and the
// root block's embedded set grant authority
func (st *SecureTree) keySetBlocks(root *Block) ([]*Block, error) {
	result := make([]*Block, 0, 2)

	current := st.chainHead(root.Digest)
	for current != root.Digest {
		block, err := st.ReadSecureBlock(current)
		if nil != err {
			return nil, err
		}
		if nil == block {
			return nil, fault.ErrBlockIsNull
		}
		if treerecord.KeysTag == block.Tag() {
			result = append(result, block)
		}
		current = block.TreeBlock.PrevBlock
	}

	result = append(result, root)
	return result, nil
}
