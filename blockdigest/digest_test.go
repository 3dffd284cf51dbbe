// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdigest_test

import (
	"fmt"
	"testing"

	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
)

// test the digest of a known value
//
// echo -n 'I am a string!' | sha3sum -a 256
func TestDigest(t *testing.T) {
	s := []byte("I am a string!")
	d := blockdigest.NewDigest(s)

	expected := blockdigest.Digest{
		0x9c, 0x4b, 0x7d, 0x6c, 0x96, 0x7e, 0xad, 0x7d,
		0xf3, 0x0e, 0x09, 0xed, 0xf0, 0xd2, 0xb4, 0x2b,
		0xad, 0xcd, 0xe4, 0x79, 0xe9, 0xb3, 0xad, 0x83,
		0x86, 0xf9, 0x61, 0x30, 0xa5, 0xbf, 0xaa, 0x0d,
	}

	if d != expected {
		t.Errorf("digest: %#v  expected: %#v", d, expected)
	}

	if d.IsEmpty() {
		t.Error("digest of data is empty")
	}

	if !blockdigest.Empty.IsEmpty() {
		t.Error("zero digest is not empty")
	}
}

// hex round trip through MarshalText/UnmarshalText and Scan
func TestDigestText(t *testing.T) {
	d := blockdigest.NewDigest([]byte("round trip"))

	text, err := d.MarshalText()
	if nil != err {
		t.Fatalf("marshal text error: %s", err)
	}

	var back blockdigest.Digest
	err = back.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal text error: %s", err)
	}
	if back != d {
		t.Errorf("round trip: %#v  expected: %#v", back, d)
	}

	var scanned blockdigest.Digest
	_, err = fmt.Sscan(d.String(), &scanned)
	if nil != err {
		t.Fatalf("scan error: %s", err)
	}
	if scanned != d {
		t.Errorf("scan: %#v  expected: %#v", scanned, d)
	}
}

// reject wrong length buffers
func TestDigestFromBytes(t *testing.T) {
	var d blockdigest.Digest

	err := blockdigest.DigestFromBytes(&d, []byte{0x01, 0x02, 0x03})
	if fault.ErrInvalidBlockHash != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrInvalidBlockHash)
	}

	source := blockdigest.NewDigest([]byte("some data"))
	err = blockdigest.DigestFromBytes(&d, source[:])
	if nil != err {
		t.Fatalf("digest from bytes error: %s", err)
	}
	if d != source {
		t.Errorf("digest: %#v  expected: %#v", d, source)
	}
}
