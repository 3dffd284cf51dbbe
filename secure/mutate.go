// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// the parent type rule table: which child types may appear under each
// container type; this doubles as the exhaustiveness check for the
// type dispatch
var allowedChildren = map[treerecord.TagType]map[treerecord.TagType]bool{
	treerecord.RootTag: {
		treerecord.ZoneTag:    true,
		treerecord.KeysTag:    true,
		treerecord.OptionsTag: true,
	},
	treerecord.ZoneTag: {
		treerecord.ZoneTag:       true,
		treerecord.IdentityTag:   true,
		treerecord.CollectionTag: true,
		treerecord.KeysTag:       true,
		treerecord.OptionsTag:    true,
	},
	treerecord.IdentityTag: {
		treerecord.CollectionTag: true,
		treerecord.KeysTag:       true,
		treerecord.OptionsTag:    true,
	},
	treerecord.CollectionTag: {
		treerecord.KeysTag:    true,
		treerecord.OptionsTag: true,
	},
}

// CreateArguments - the shared envelope for creating a nested chain
type CreateArguments struct {
	Block   blockdigest.Digest // the container to nest under
	Signer  Signer
	Keys    treerecord.KeySet     // initial keys, may be empty
	Options treerecord.OptionList // initial options
}

// SetArguments - the shared envelope for extending an existing chain
type SetArguments struct {
	Block  blockdigest.Digest // any block of the chain to extend
	Signer Signer
}

// CreateZone - start a zone chain under a zone or the root
func (st *SecureTree) CreateZone(args CreateArguments) (blockdigest.Digest, error) {
	return st.createContainer(&treerecord.Zone{
		Keys:    args.Keys,
		Options: args.Options,
	}, args)
}

// CreateIdentity - start an identity chain under a zone
func (st *SecureTree) CreateIdentity(args CreateArguments) (blockdigest.Digest, error) {
	return st.createContainer(&treerecord.Identity{
		Keys:    args.Keys,
		Options: args.Options,
	}, args)
}

// CreateCollection - start a collection chain under an identity or zone
func (st *SecureTree) CreateCollection(args CreateArguments) (blockdigest.Digest, error) {
	return st.createContainer(&treerecord.Collection{
		Keys:    args.Keys,
		Options: args.Options,
	}, args)
}

// SetKeys - append a key grant record to a chain
func (st *SecureTree) SetKeys(args SetArguments, keys treerecord.KeySet) (blockdigest.Digest, error) {
	return st.extendChain(&treerecord.Keys{Keys: keys}, args, true)
}

// RevokeKeys - close the validity windows of keys on a chain
//
// a keys record is appended whose entries end at the current time;
// newest grants shadow older ones so the closed windows take effect
// for all subsequent writes while history stays verifiable
func (st *SecureTree) RevokeKeys(args SetArguments, keys treerecord.KeySet) (blockdigest.Digest, error) {
	now := st.clock.Now()

	revoked := make(treerecord.KeySet)
	for action, entries := range keys {
		closed := make([]treerecord.AuthorizedKey, 0, len(entries))
		for _, entry := range entries {
			entry.Secret = nil
			entry.ValidTo = now
			closed = append(closed, entry)
		}
		revoked[action] = closed
	}

	return st.extendChain(&treerecord.Keys{Keys: revoked}, args, true)
}

// SetOptions - append named metadata to a chain
func (st *SecureTree) SetOptions(args SetArguments, options treerecord.OptionList) (blockdigest.Digest, error) {
	return st.extendChain(&treerecord.Options{Options: options}, args, false)
}

// AddRecord - append a domain data record to a collection chain
func (st *SecureTree) AddRecord(args SetArguments, record treerecord.OptionList) (blockdigest.Digest, error) {
	chainRoot, err := st.chainRootOf(args.Block)
	if nil != err {
		return blockdigest.Empty, err
	}
	if treerecord.CollectionTag != chainRoot.Tag() {
		return blockdigest.Empty, fault.ErrInvalidParentType
	}
	return st.extendChain(&treerecord.Options{Options: record}, args, false)
}

// nest a new chain under a container block
func (st *SecureTree) createContainer(record treerecord.Record, args CreateArguments) (blockdigest.Digest, error) {
	if args.Block.IsEmpty() {
		return blockdigest.Empty, fault.ErrBlockIsNull
	}

	parentRoot, err := st.chainRootOf(args.Block)
	if nil != err {
		return blockdigest.Empty, err
	}

	if !allowedChildren[parentRoot.Tag()][record.Tag()] {
		return blockdigest.Empty, fault.ErrInvalidParentType
	}

	return st.writeSigned(writeRequest{
		record: record,
		parent: parentRoot.Digest,
		signer: args.Signer,
	}, parentRoot)
}

// append a record to the head of an existing chain
//
// the new block copies the chain's parent edge so the chain stays
// attached to the tree; key operations may extend the root chain,
// anything else may not touch the trust anchor
func (st *SecureTree) extendChain(record treerecord.Record, args SetArguments, keysAllowedOnRoot bool) (blockdigest.Digest, error) {
	if args.Block.IsEmpty() {
		return blockdigest.Empty, fault.ErrBlockIsNull
	}

	chainRoot, err := st.chainRootOf(args.Block)
	if nil != err {
		return blockdigest.Empty, err
	}

	if treerecord.RootTag == chainRoot.Tag() && !keysAllowedOnRoot {
		return blockdigest.Empty, fault.ErrBlockIsNull
	}
	if !allowedChildren[chainRoot.Tag()][record.Tag()] {
		return blockdigest.Empty, fault.ErrInvalidParentType
	}

	// authority comes from the chain the new block's parent edge
	// points at: a zone's own keys never govern the zone's chain
	governing := chainRoot
	if !chainRoot.TreeBlock.Parent.IsEmpty() {
		governing, err = st.chainRoot(chainRoot.TreeBlock.Parent)
		if nil != err {
			return blockdigest.Empty, err
		}
	}

	head := st.chainHead(chainRoot.Digest)

	return st.writeSigned(writeRequest{
		record:    record,
		prevBlock: head,
		parent:    chainRoot.TreeBlock.Parent,
		signer:    args.Signer,
	}, governing)
}

// the secure chain root block for any block of a chain
func (st *SecureTree) chainRootOf(digest blockdigest.Digest) (*Block, error) {
	block, err := st.ReadSecureBlock(digest)
	if nil != err {
		return nil, err
	}
	if nil == block {
		return nil, fault.ErrBlockIsNull
	}
	if block.TreeBlock.IsChainRoot() {
		return block, nil
	}
	return st.chainRoot(digest)
}
