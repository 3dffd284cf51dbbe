// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/keypair"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// SigningRequest - the exact position and content a signature must cover
type SigningRequest struct {
	PrevBlock blockdigest.Digest
	Parent    blockdigest.Digest
	Tag       treerecord.TagType
	Body      []byte
}

// Signer - produces signatures without exposing private key material
//
// implementations may hold keys locally, delegate to an HSM or route
// through the secrets broker
type Signer interface {
	Sign(request SigningRequest) (*account.Account, account.Signature, error)
}

// KeyPairSigner - a signer over a locally held key pair
type KeyPairSigner struct {
	keyPair *keypair.KeyPair
}

// NewKeyPairSigner - wrap a key pair as a signer
func NewKeyPairSigner(kp *keypair.KeyPair) *KeyPairSigner {
	return &KeyPairSigner{
		keyPair: kp,
	}
}

// Sign - sign the canonical bytes for the request
func (signer *KeyPairSigner) Sign(request SigningRequest) (*account.Account, account.Signature, error) {
	message := treerecord.SigningMessage(request.PrevBlock, request.Parent, request.Tag, request.Body)
	return signer.keyPair.Account(), signer.keyPair.Sign(message), nil
}
