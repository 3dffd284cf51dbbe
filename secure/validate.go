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

// ValidateSignature - verify a stored block's signature and authority
//
// the signature bytes are checked against the signer's declared
// account at the block's exact position, then the signer is resolved
// against the governing key sets; validity windows are judged at the
// block's own timestamp, so a later revocation does not invalidate
// history
func (st *SecureTree) ValidateSignature(digest blockdigest.Digest) error {
	block, err := st.ReadSecureBlock(digest)
	if nil != err {
		return err
	}
	if nil == block {
		return fault.ErrBlockIsNull
	}

	if 0 == len(block.Record.Signature) {
		return fault.ErrSignatureNotFound
	}

	message := treerecord.SigningMessage(
		block.TreeBlock.PrevBlock,
		block.TreeBlock.Parent,
		block.Record.RecordTag,
		block.Record.Body,
	)
	if err := block.Record.Signer.CheckSignature(message, block.Record.Signature); nil != err {
		return err
	}

	start, err := st.authorizationStart(block)
	if nil != err {
		return err
	}

	_, err = st.authorize(start, treerecord.WriteAction, block.Record.Signer, block.TreeBlock.Timestamp)
	return err
}
