// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package broker - the trusted secrets broker
//
// the broker re-encrypts authorized key material under a requestor's
// trusted key; it is peripheral glue around the secure layer and holds
// the only long-lived decryption key in the system
package broker

import (
	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/chronology"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/keypair"
	"github.com/blocktree-inc/blocktreed/util"
)

// Token - a signed re-encryption request token
//
// the signature covers the nonce, the timestamp and the trusted key
// the requestor wants the secrets re-encrypted under
type Token struct {
	Account    *account.Account  `json:"account"`
	Nonce      []byte            `json:"nonce"`
	Timestamp  uint64            `json:"timestamp,string"`
	TrustedKey []byte            `json:"trustedKey"`
	Signature  account.Signature `json:"signature"`
}

// Broker - the re-encryption service consumed by the secure layer
type Broker interface {

	// RequestToken - obtain a signed token for a trusted key
	RequestToken(trustedKey *[32]byte) (*Token, error)

	// Reencrypt - decrypt broker-held secrets and re-encrypt them
	// under the token's trusted key
	Reencrypt(token *Token, secrets [][]byte) ([][]byte, error)
}

// the canonical bytes a token signature covers
func tokenMessage(token *Token) []byte {
	message := append([]byte{}, token.Nonce...)
	message, _ = util.AppendUint64(message, token.Timestamp)
	return append(message, token.TrustedKey...)
}

// Memory - an in-process broker
type Memory struct {
	signing *keypair.KeyPair
	box     *keypair.BoxKeyPair
	clock   chronology.Clock
}

// NewMemory - create a broker over its signing and decryption keys
func NewMemory(signing *keypair.KeyPair, box *keypair.BoxKeyPair, clock chronology.Clock) *Memory {
	return &Memory{
		signing: signing,
		box:     box,
		clock:   clock,
	}
}

// BoxPublicKey - the key secrets must be encrypted under to be
// readable by this broker
func (m *Memory) BoxPublicKey() *[32]byte {
	return m.box.PublicKey
}

// RequestToken - issue a signed token for a trusted key
func (m *Memory) RequestToken(trustedKey *[32]byte) (*Token, error) {
	nonce, err := keypair.RandomBytes(16)
	if nil != err {
		return nil, err
	}

	token := &Token{
		Account:    m.signing.Account(),
		Nonce:      nonce,
		Timestamp:  m.clock.Now(),
		TrustedKey: trustedKey[:],
	}
	token.Signature = m.signing.Sign(tokenMessage(token))
	return token, nil
}

// Reencrypt - verify the token, open each secret with the broker key
// and seal it under the trusted key
func (m *Memory) Reencrypt(token *Token, secrets [][]byte) ([][]byte, error) {
	if nil == token || !token.Account.Equal(m.signing.Account()) {
		return nil, fault.ErrTokenDoesNotMatch
	}
	if err := token.Account.CheckSignature(tokenMessage(token), token.Signature); nil != err {
		return nil, fault.ErrTokenDoesNotMatch
	}
	if keypair.BoxPublicKeySize != len(token.TrustedKey) {
		return nil, fault.ErrInvalidKeyLength
	}

	var trustedKey [32]byte
	copy(trustedKey[:], token.TrustedKey)

	result := make([][]byte, 0, len(secrets))
	for _, secret := range secrets {
		opened, err := m.box.Open(secret)
		if nil != err {
			return nil, err
		}
		sealed, err := keypair.Seal(&trustedKey, opened)
		if nil != err {
			return nil, err
		}
		result = append(result, sealed)
	}
	return result, nil
}
