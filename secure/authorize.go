// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// authorize - resolve the authorized key set for a signing key
//
// walk starts at the chain root governing the operation and ascends
// parent links; at each level the newest grant for the key decides:
// a grant whose window covers the timestamp authorizes, a grant whose
// window has closed fails expired, no grant at all ascends; running
// past the root fails unauthorized
//
// the returned trace lists the key set blocks that were consulted, in
// walk order, ending with the granting block
func (st *SecureTree) authorize(start *Block, action treerecord.KeyAction, signer *account.Account, timestamp uint64) ([]*Block, error) {

	trace := make([]*Block, 0, 4)

	level := start
	for {
		keyBlocks, err := st.keySetBlocks(level)
		if nil != err {
			return nil, err
		}

		for _, keyBlock := range keyBlocks {
			trace = append(trace, keyBlock)

			keySet := keyBlock.Record.EmbeddedKeys()
			if nil == keySet {
				continue
			}
			entry, found := keySet.Lookup(action, signer)
			if !found {
				continue
			}
			if entry.Covers(signer, timestamp) {
				return trace, nil
			}
			if treerecord.ForeverTimestamp != entry.ValidTo && timestamp >= entry.ValidTo {
				return trace, fault.ErrKeyExpired
			}
			return trace, fault.ErrSignatureUnauthorized
		}

		parent := level.TreeBlock.Parent
		if parent.IsEmpty() {
			// the trust anchor was reached without a grant
			return trace, fault.ErrSignatureUnauthorized
		}
		level, err = st.chainRoot(parent)
		if nil != err {
			return nil, err
		}
	}
}

// SignatureTrace - the ordered key set blocks between a block and the root
//
// the last element is the block whose key set authorized the signature
func (st *SecureTree) SignatureTrace(digest blockdigest.Digest) ([]*Block, error) {
	block, err := st.ReadSecureBlock(digest)
	if nil != err {
		return nil, err
	}
	if nil == block {
		return nil, fault.ErrBlockIsNull
	}

	start, err := st.authorizationStart(block)
	if nil != err {
		return nil, err
	}

	return st.authorize(start, treerecord.WriteAction, block.Record.Signer, block.TreeBlock.Timestamp)
}

// the chain root whose key sets govern an already written block
//
// authority always comes from the chain the block's parent edge
// points at; only the trust anchor's chain, having no parent edge,
// governs itself
func (st *SecureTree) authorizationStart(block *Block) (*Block, error) {
	if !block.TreeBlock.Parent.IsEmpty() {
		return st.chainRoot(block.TreeBlock.Parent)
	}
	return st.chainRootOf(block.Digest)
}
