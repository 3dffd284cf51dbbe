// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/blocktree-inc/blocktreed/blockchain"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
)

// layer tags
//
// the tag records which layer produced the payload
const (
	NullLayer      = iota // not a valid layer
	LayerBlocktree        // opaque tree payloads
	LayerSecure           // typed records of the secure layer

	// this item must be last
	layerLimit
)

// offsets of the header fields
const (
	parentOffset  = 0
	layerOffset   = parentOffset + blockdigest.Length
	payloadOffset = layerOffset + 1

	// HeaderSize - total bytes in the tree header
	HeaderSize = payloadOffset
)

// Block - a chain block with its tree header unpacked
type Block struct {
	blockchain.Block

	Parent  blockdigest.Digest `json:"parent"` // zero digest when null
	Layer   uint8              `json:"layer"`
	Payload []byte             `json:"payload"`
}

// PackHeader - prepend the tree header onto a payload
func PackHeader(parent blockdigest.Digest, layer uint8, payload []byte) ([]byte, error) {
	if NullLayer == layer || layer >= layerLimit {
		return nil, fault.ErrInvalidLayer
	}

	buffer := make([]byte, 0, HeaderSize+len(payload))
	buffer = append(buffer, parent[:]...)
	buffer = append(buffer, layer)
	buffer = append(buffer, payload...)
	return buffer, nil
}

// UnpackHeader - split the tree header from the front of chain data
func UnpackHeader(data []byte) (blockdigest.Digest, uint8, []byte, error) {
	if len(data) < HeaderSize {
		return blockdigest.Empty, NullLayer, nil, fault.ErrArgumentOutOfBounds
	}

	var parent blockdigest.Digest
	copy(parent[:], data[parentOffset:layerOffset])

	layer := data[layerOffset]
	if NullLayer == layer || layer >= layerLimit {
		return blockdigest.Empty, NullLayer, nil, fault.ErrInvalidLayer
	}

	return parent, layer, data[payloadOffset:], nil
}

// unpack a chain block into a tree block
func fromChainBlock(chainBlock *blockchain.Block) (*Block, error) {
	parent, layer, payload, err := UnpackHeader(chainBlock.Data)
	if nil != err {
		return nil, err
	}
	return &Block{
		Block:   *chainBlock,
		Parent:  parent,
		Layer:   layer,
		Payload: payload,
	}, nil
}
