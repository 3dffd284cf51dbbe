// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package broker_test

import (
	"bytes"
	"testing"

	"github.com/blocktree-inc/blocktreed/broker"
	"github.com/blocktree-inc/blocktreed/chronology"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/keypair"
)

func newBroker(t *testing.T) (*broker.Memory, *keypair.BoxKeyPair) {
	t.Helper()

	signing, err := keypair.Generate()
	if nil != err {
		t.Fatalf("generate signing key error: %s", err)
	}
	boxKey, err := keypair.GenerateBox()
	if nil != err {
		t.Fatalf("generate box key error: %s", err)
	}
	return broker.NewMemory(signing, boxKey, chronology.NewStopped(1000)), boxKey
}

// the full re-encryption round trip
func TestReencrypt(t *testing.T) {
	m, _ := newBroker(t)

	trusted, err := keypair.GenerateBox()
	if nil != err {
		t.Fatalf("generate trusted key error: %s", err)
	}

	secret := []byte("an authorized private key")
	sealed, err := keypair.Seal(m.BoxPublicKey(), secret)
	if nil != err {
		t.Fatalf("seal error: %s", err)
	}

	token, err := m.RequestToken(trusted.PublicKey)
	if nil != err {
		t.Fatalf("request token error: %s", err)
	}

	reencrypted, err := m.Reencrypt(token, [][]byte{sealed})
	if nil != err {
		t.Fatalf("reencrypt error: %s", err)
	}
	if 1 != len(reencrypted) {
		t.Fatalf("results: %d  expected: 1", len(reencrypted))
	}

	opened, err := trusted.Open(reencrypted[0])
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	if !bytes.Equal(secret, opened) {
		t.Errorf("secret: %q  expected: %q", opened, secret)
	}
}

// a tampered token is rejected
func TestTamperedToken(t *testing.T) {
	m, _ := newBroker(t)

	trusted, err := keypair.GenerateBox()
	if nil != err {
		t.Fatalf("generate trusted key error: %s", err)
	}
	intruder, err := keypair.GenerateBox()
	if nil != err {
		t.Fatalf("generate intruder key error: %s", err)
	}

	token, err := m.RequestToken(trusted.PublicKey)
	if nil != err {
		t.Fatalf("request token error: %s", err)
	}

	// redirect the re-encryption target after signing
	token.TrustedKey = intruder.PublicKey[:]

	_, err = m.Reencrypt(token, nil)
	if fault.ErrTokenDoesNotMatch != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrTokenDoesNotMatch)
	}

	_, err = m.Reencrypt(nil, nil)
	if fault.ErrTokenDoesNotMatch != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrTokenDoesNotMatch)
	}
}
