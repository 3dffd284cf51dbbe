// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"

	"github.com/blocktree-inc/blocktreed/fault"
)

// BoxPublicKeySize - bytes in a curve25519 public key
const BoxPublicKeySize = 32

// BoxKeyPair - curve25519 key pair for public key encryption
//
// encryption keys are distinct from signing keys; the broker and any
// trusted reader hold one of these
type BoxKeyPair struct {
	PublicKey  *[32]byte
	PrivateKey *[32]byte
}

// GenerateBox - create a new encryption key pair
func GenerateBox() (*BoxKeyPair, error) {
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &BoxKeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// Seal - encrypt data to a recipient public key
//
// an ephemeral sender key is generated per message and prepended with
// the nonce:  ephemeral public key ++ nonce ++ box
func Seal(recipient *[32]byte, data []byte) ([]byte, error) {
	ephemeralPublic, ephemeralPrivate, err := box.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}

	var nonce [24]byte
	_, err = rand.Read(nonce[:])
	if nil != err {
		return nil, err
	}

	sealed := box.Seal(nil, data, &nonce, recipient, ephemeralPrivate)

	result := make([]byte, 0, 32+24+len(sealed))
	result = append(result, ephemeralPublic[:]...)
	result = append(result, nonce[:]...)
	result = append(result, sealed...)
	return result, nil
}

// Open - decrypt data sealed to this key pair
func (kp *BoxKeyPair) Open(data []byte) ([]byte, error) {
	if len(data) < 32+24+box.Overhead {
		return nil, fault.ErrArgumentOutOfBounds
	}

	var senderPublic [32]byte
	var nonce [24]byte
	copy(senderPublic[:], data[:32])
	copy(nonce[:], data[32:56])

	opened, ok := box.Open(nil, data[56:], &nonce, &senderPublic, kp.PrivateKey)
	if !ok {
		return nil, fault.ErrSignatureDoesNotMatch
	}
	return opened, nil
}
