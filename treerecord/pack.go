// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treerecord

import (
	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/util"
)

// PackBody - serialize the root body
func (record *Root) PackBody() ([]byte, error) {
	return record.Keys.Pack()
}

// PackBody - serialize the zone body: key set then options
func (record *Zone) PackBody() ([]byte, error) {
	return packKeysAndOptions(record.Keys, record.Options)
}

// PackBody - serialize the identity body: key set then options
func (record *Identity) PackBody() ([]byte, error) {
	return packKeysAndOptions(record.Keys, record.Options)
}

// PackBody - serialize the collection body: key set then options
func (record *Collection) PackBody() ([]byte, error) {
	return packKeysAndOptions(record.Keys, record.Options)
}

// PackBody - serialize the keys body
func (record *Keys) PackBody() ([]byte, error) {
	return record.Keys.Pack()
}

// PackBody - serialize the options body
func (record *Options) PackBody() ([]byte, error) {
	return record.Options.Pack()
}

// common body layout for the container records
func packKeysAndOptions(keys KeySet, options OptionList) ([]byte, error) {
	buffer, err := keys.Pack()
	if nil != err {
		return nil, err
	}
	packedOptions, err := options.Pack()
	if nil != err {
		return nil, err
	}
	return append(buffer, packedOptions...), nil
}

// SigningMessage - the canonical bytes a record signature covers
//
// prev digest ++ parent digest ++ tag ++ body, binding the record to
// its exact position in the tree
func SigningMessage(prev blockdigest.Digest, parent blockdigest.Digest, tag TagType, body []byte) []byte {
	message := make([]byte, 0, 2*blockdigest.Length+1+len(body))
	message = append(message, prev[:]...)
	message = append(message, parent[:]...)
	message = append(message, byte(tag))
	message = append(message, body...)
	return message
}

// Pack - assemble the full payload: tag ++ body ++ signature envelope
//
// the signature must already cover SigningMessage for the position the
// payload is written to
func Pack(record Record, signer *account.Account, signature account.Signature) (Packed, error) {
	body, err := record.PackBody()
	if nil != err {
		return nil, err
	}
	return PackParts(record.Tag(), body, signer, signature)
}

// PackParts - assemble a payload from an already packed body
func PackParts(tag TagType, body []byte, signer *account.Account, signature account.Signature) (Packed, error) {
	buffer := append([]byte{byte(tag)}, body...)

	buffer, err := util.AppendSized(buffer, signer.Bytes())
	if nil != err {
		return nil, err
	}
	buffer, err = util.AppendSized(buffer, signature)
	if nil != err {
		return nil, err
	}
	return buffer, nil
}
