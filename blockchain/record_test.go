// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain_test

import (
	"bytes"
	"testing"

	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
)

// a chain root packs its prev slot as a single zero byte
func TestPackChainRoot(t *testing.T) {
	block := &blockchain.Block{
		Nonce:     0x1122334455667788,
		Timestamp: 0x00000000000003e8,
		Data:      []byte("payload"),
	}

	packed := block.Pack()

	expected := []byte{
		0x00,       // prev length - 1
		0x00,       // null prev
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, // nonce
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe8, // timestamp
		'p', 'a', 'y', 'l', 'o', 'a', 'd',
	}

	if !bytes.Equal(expected, packed) {
		t.Errorf("packed: %x  expected: %x", packed, expected)
	}

	unpacked, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !unpacked.IsChainRoot() {
		t.Error("chain root lost its null prev")
	}
	if block.Nonce != unpacked.Nonce || block.Timestamp != unpacked.Timestamp {
		t.Errorf("unpacked: %+v  expected: %+v", unpacked, block)
	}
	if !bytes.Equal(block.Data, unpacked.Data) {
		t.Errorf("data: %q  expected: %q", unpacked.Data, block.Data)
	}
}

// a linked block carries the full prev digest
func TestPackLinkedBlock(t *testing.T) {
	prev := blockdigest.NewDigest([]byte("previous block"))

	block := &blockchain.Block{
		PrevBlock: prev,
		Nonce:     1,
		Timestamp: 2,
		Data:      []byte{0xff},
	}

	packed := block.Pack()

	if byte(blockdigest.Length-1) != packed[0] {
		t.Errorf("prev length byte: %d  expected: %d", packed[0], blockdigest.Length-1)
	}
	if !bytes.Equal(prev[:], packed[1:1+blockdigest.Length]) {
		t.Errorf("prev field: %x  expected: %x", packed[1:1+blockdigest.Length], prev[:])
	}

	unpacked, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if prev != unpacked.PrevBlock {
		t.Errorf("prev: %v  expected: %v", unpacked.PrevBlock, prev)
	}
	if unpacked.IsChainRoot() {
		t.Error("linked block claims to be a chain root")
	}
}

// malformed buffers are rejected
func TestUnpackErrors(t *testing.T) {
	// truncated header
	_, err := blockchain.PackedBlock{0x00}.Unpack()
	if fault.ErrArgumentOutOfBounds != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrArgumentOutOfBounds)
	}

	// prev length that is neither 1 nor a digest
	buffer := append([]byte{0x04}, make([]byte, 5+16)...)
	_, err = blockchain.PackedBlock(buffer).Unpack()
	if fault.ErrInvalidBlockHash != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrInvalidBlockHash)
	}

	// single byte prev that is not zero
	buffer = append([]byte{0x00, 0x01}, make([]byte, 16)...)
	_, err = blockchain.PackedBlock(buffer).Unpack()
	if fault.ErrInvalidBlockHash != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrInvalidBlockHash)
	}
}

// the digest is over the full serialized buffer
func TestRecordDigest(t *testing.T) {
	block := &blockchain.Block{
		Nonce:     42,
		Timestamp: 43,
		Data:      []byte("digest me"),
	}
	packed := block.Pack()

	if packed.Digest() != blockdigest.NewDigest(packed) {
		t.Error("record digest is not the digest of the packed bytes")
	}
}
