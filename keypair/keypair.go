// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keypair - signing key pairs
//
// holds the ed25519 private key material that the core layers never
// see; the secure layer receives signatures through its Signer
// abstraction, which secure.KeyPairSigner implements over a KeyPair
package keypair

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/fault"
)

// KeyPair - structure to hold public and private keys
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// RawKeyPair - text version of the keys
type RawKeyPair struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// Generate - create a new key pair from secure random data
func Generate() (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// FromPrivateKeyHex - rebuild a key pair from a hex encoded private key
func FromPrivateKeyHex(privateKeyHex string) (*KeyPair, error) {
	privateKey, err := hex.DecodeString(privateKeyHex)
	if nil != err {
		return nil, err
	}
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	publicKey := ed25519.PrivateKey(privateKey).Public().(ed25519.PublicKey)
	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// Sign - sign a message with the private key
func (kp *KeyPair) Sign(message []byte) account.Signature {
	return account.Signature(ed25519.Sign(kp.PrivateKey, message))
}

// Account - the public identity for this key pair
func (kp *KeyPair) Account() *account.Account {
	return &account.Account{
		PublicKey: kp.PublicKey,
	}
}

// Raw - hex encoded form for configuration files
func (kp *KeyPair) Raw() RawKeyPair {
	return RawKeyPair{
		PublicKey:  hex.EncodeToString(kp.PublicKey),
		PrivateKey: hex.EncodeToString(kp.PrivateKey),
	}
}

// RandomBytes - fill a new buffer with secure random data
func RandomBytes(count int) ([]byte, error) {
	buffer := make([]byte, count)
	n, err := rand.Read(buffer)
	if nil != err {
		return nil, err
	}
	if count != n {
		return nil, fault.ErrArgumentOutOfBounds
	}
	return buffer, nil
}
