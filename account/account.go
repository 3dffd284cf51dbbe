// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - public key identities
//
// an account is an ed25519 public key carried on blocks as the signing
// identity; the text form is base58 of a key-variant byte, the key and
// a four byte SHA3-256 checksum
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/blocktree-inc/blocktreed/fault"
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01

	algorithmShift = 4 // shift 4 bits to get algorithm

	// the only supported algorithm
	ed25519Algorithm = 0x01
)

// Account - an ed25519 public key identity
type Account struct {
	PublicKey []byte
}

// AccountFromBase58 - convert a base58 encoded string to an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || 0 == len(accountDecoded) {
		return nil, fault.ErrCannotDecodeAccount
	}

	// checksum
	checksumStart := len(accountDecoded) - checksumLength
	if checksumStart <= 0 {
		return nil, fault.ErrCannotDecodeAccount
	}
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	return AccountFromBytes(accountDecoded[:checksumStart])
}

// AccountFromBytes - convert a byte encoded buffer to an account
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	if 0 == len(accountBytes) {
		return nil, fault.ErrNotPublicKey
	}

	keyVariant := accountBytes[0]
	if keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}
	if keyVariant>>algorithmShift != ed25519Algorithm {
		return nil, fault.ErrInvalidKeyLength
	}

	publicKey := accountBytes[1:]
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}

	return &Account{
		PublicKey: publicKey,
	}, nil
}

// CheckSignature - check the signature of a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrSignatureDoesNotMatch
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrSignatureDoesNotMatch
	}
	return nil
}

// Bytes - byte slice for the encoded key
func (account *Account) Bytes() []byte {
	keyVariant := byte(ed25519Algorithm<<algorithmShift) | publicKeyCode
	return append([]byte{keyVariant}, account.PublicKey...)
}

// String - base58 encoding of the encoded key with checksum
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert base58 text into an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.PublicKey = a.PublicKey
	return nil
}

// Equal - compare two accounts by key bytes
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other {
		return false
	}
	return bytes.Equal(account.PublicKey, other.PublicKey)
}
