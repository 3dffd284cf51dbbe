// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/util"
)

// byte sizes for the fixed fields
const (
	NonceSize     = 8 // 64-bit random value
	TimestampSize = 8 // seconds since 1970-01-01T00:00 UTC
)

// PackedBlock - packed records are just a byte slice
type PackedBlock []byte

// Block - the unpacked block structure
//
// the digest is derived from the packed bytes, never stored inside
type Block struct {
	PrevBlock blockdigest.Digest `json:"prevBlock"` // zero digest for a chain root
	Nonce     uint64             `json:"nonce,string"`
	Timestamp uint64             `json:"timestamp,string"`
	Data      []byte             `json:"data"`
}

// IsChainRoot - a block with no previous block starts a chain
func (block *Block) IsChainRoot() bool {
	return block.PrevBlock.IsEmpty()
}

// Pack - turn a record into an array of bytes
func (block *Block) Pack() PackedBlock {

	// a chain root stores a single zero byte in the prev slot
	prev := []byte{0x00}
	if !block.PrevBlock.IsEmpty() {
		prev = block.PrevBlock[:]
	}

	buffer := make([]byte, 0, 1+len(prev)+NonceSize+TimestampSize+len(block.Data))
	buffer = append(buffer, byte(len(prev)-1))
	buffer = append(buffer, prev...)
	buffer, _ = util.AppendUint64(buffer, block.Nonce)
	buffer, _ = util.AppendUint64(buffer, block.Timestamp)
	buffer = append(buffer, block.Data...)
	return buffer
}

// Unpack - turn a byte slice into a record
func (record PackedBlock) Unpack() (*Block, error) {

	prevLength, rest, err := util.SplitUint8(record)
	if nil != err {
		return nil, err
	}
	prevLength += 1

	prev, rest, err := util.SplitBytes(rest, int(prevLength))
	if nil != err {
		return nil, err
	}

	block := &Block{}
	switch {
	case 1 == prevLength && 0x00 == prev[0]:
		// chain root
	case blockdigest.Length == int(prevLength):
		err = blockdigest.DigestFromBytes(&block.PrevBlock, prev)
		if nil != err {
			return nil, err
		}
	default:
		return nil, fault.ErrInvalidBlockHash
	}

	block.Nonce, rest, err = util.SplitUint64(rest)
	if nil != err {
		return nil, err
	}
	block.Timestamp, rest, err = util.SplitUint64(rest)
	if nil != err {
		return nil, err
	}

	block.Data = rest
	return block, nil
}

// Digest - the content digest identifying a packed block
func (record PackedBlock) Digest() blockdigest.Digest {
	return blockdigest.NewDigest(record)
}
