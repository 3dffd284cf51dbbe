// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair_test

import (
	"bytes"
	"testing"

	"github.com/blocktree-inc/blocktreed/keypair"
)

// generate, sign and verify through the account
func TestGenerateAndSign(t *testing.T) {
	kp, err := keypair.Generate()
	if nil != err {
		t.Fatalf("generate error: %s", err)
	}

	message := []byte("a message to sign")
	signature := kp.Sign(message)

	if err := kp.Account().CheckSignature(message, signature); nil != err {
		t.Errorf("check signature error: %s", err)
	}
}

// hex private key round trip preserves the public key
func TestFromPrivateKeyHex(t *testing.T) {
	kp, err := keypair.Generate()
	if nil != err {
		t.Fatalf("generate error: %s", err)
	}

	back, err := keypair.FromPrivateKeyHex(kp.Raw().PrivateKey)
	if nil != err {
		t.Fatalf("from private key error: %s", err)
	}
	if !bytes.Equal(kp.PublicKey, back.PublicKey) {
		t.Errorf("public key: %x  expected: %x", back.PublicKey, kp.PublicKey)
	}

	_, err = keypair.FromPrivateKeyHex("deadbeef")
	if nil == err {
		t.Error("truncated private key was accepted")
	}
}

// random bytes are the right length and not all zero
func TestRandomBytes(t *testing.T) {
	buffer, err := keypair.RandomBytes(32)
	if nil != err {
		t.Fatalf("random bytes error: %s", err)
	}
	if 32 != len(buffer) {
		t.Fatalf("length: %d  expected: 32", len(buffer))
	}
	if bytes.Equal(buffer, make([]byte, 32)) {
		t.Error("random bytes are all zero")
	}
}

// box seal/open round trip; the wrong key must fail
func TestBox(t *testing.T) {
	recipient, err := keypair.GenerateBox()
	if nil != err {
		t.Fatalf("generate box error: %s", err)
	}

	secret := []byte("the private key material")
	sealed, err := keypair.Seal(recipient.PublicKey, secret)
	if nil != err {
		t.Fatalf("seal error: %s", err)
	}
	if bytes.Contains(sealed, secret) {
		t.Fatal("sealed data contains the plaintext")
	}

	opened, err := recipient.Open(sealed)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	if !bytes.Equal(secret, opened) {
		t.Errorf("opened: %q  expected: %q", opened, secret)
	}

	intruder, err := keypair.GenerateBox()
	if nil != err {
		t.Fatalf("generate box error: %s", err)
	}
	_, err = intruder.Open(sealed)
	if nil == err {
		t.Error("wrong key opened the box")
	}
}
