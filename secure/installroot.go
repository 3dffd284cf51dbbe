// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/tree"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// InstallRootArguments - the trust anchor and its first zone
type InstallRootArguments struct {
	RootKeys     treerecord.KeySet
	RootZoneKeys treerecord.KeySet
	Options      treerecord.OptionList // options for the root zone
	Signer       Signer                // must hold the root write key
}

// InstallRoot - write the trust anchor into an empty store
//
// writes, in order: the root block carrying the root keys, then a
// zone chain root under it carrying the root zone keys; any existing
// block in the store aborts the install
func (st *SecureTree) InstallRoot(args InstallRootArguments) (blockdigest.Digest, blockdigest.Digest, error) {

	if st.tree.Chain().CountBlocks() > 0 {
		return blockdigest.Empty, blockdigest.Empty, fault.ErrRootAlreadyInstalled
	}

	// the self signed trust anchor
	rootDigest, err := st.writeSigned(writeRequest{
		record: &treerecord.Root{Keys: args.RootKeys},
		signer: args.Signer,
	}, nil)
	if nil != err {
		return blockdigest.Empty, blockdigest.Empty, err
	}

	rootBlock, err := st.ReadSecureBlock(rootDigest)
	if nil != err {
		return blockdigest.Empty, blockdigest.Empty, err
	}

	// the root zone nests under the anchor and carries its own keys;
	// the signer must hold a root write key
	zoneDigest, err := st.writeSigned(writeRequest{
		record: &treerecord.Zone{
			Keys:    args.RootZoneKeys,
			Options: args.Options,
		},
		parent: rootDigest,
		signer: args.Signer,
	}, rootBlock)
	if nil != err {
		return blockdigest.Empty, blockdigest.Empty, err
	}

	st.log.Infof("root installed: %v  root zone: %v", rootDigest, zoneDigest)
	return rootDigest, zoneDigest, nil
}

// writeRequest - one signed block write
type writeRequest struct {
	record    treerecord.Record
	prevBlock blockdigest.Digest
	parent    blockdigest.Digest
	signer    Signer
}

// sign, authorize, verify and append one record
//
// the signer is consulted once; its declared account must be covered
// by the governing chain's key sets (unless governing is nil: only
// the trust anchor itself is written ungoverned) and the returned
// signature must verify, all before anything is written
func (st *SecureTree) writeSigned(request writeRequest, governing *Block) (blockdigest.Digest, error) {
	body, err := request.record.PackBody()
	if nil != err {
		return blockdigest.Empty, err
	}

	signerAccount, signature, err := request.signer.Sign(SigningRequest{
		PrevBlock: request.prevBlock,
		Parent:    request.parent,
		Tag:       request.record.Tag(),
		Body:      body,
	})
	if nil != err {
		return blockdigest.Empty, err
	}

	if nil != governing {
		_, err = st.authorize(governing, treerecord.WriteAction, signerAccount, st.clock.Now())
		if nil != err {
			return blockdigest.Empty, err
		}
	}

	message := treerecord.SigningMessage(request.prevBlock, request.parent, request.record.Tag(), body)
	if err := signerAccount.CheckSignature(message, signature); nil != err {
		return blockdigest.Empty, err
	}

	payload, err := treerecord.PackParts(request.record.Tag(), body, signerAccount, signature)
	if nil != err {
		return blockdigest.Empty, err
	}

	return st.tree.WriteBlock(tree.Arguments{
		PrevBlock: request.prevBlock,
		Parent:    request.parent,
		Layer:     tree.LayerSecure,
		Data:      payload,
	}, &blockchain.Options{})
}
