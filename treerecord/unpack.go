// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treerecord

import (
	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/util"
)

// Tag - returns the record type code of a packed payload
func (record Packed) Tag() TagType {
	if 0 == len(record) {
		return NullTag
	}
	tag := TagType(record[0])
	if tag >= InvalidTag {
		return InvalidTag
	}
	return tag
}

// Unpack - parse a packed payload into a signed record
//
// the tag selects the body parser; whatever follows the body is the
// signature envelope
func (record Packed) Unpack() (*SignedRecord, error) {
	if 0 == len(record) {
		return nil, fault.ErrInvalidRecordTag
	}

	tag := TagType(record[0])
	body := record[1:]

	var parsed Record
	var rest []byte
	var err error

	switch tag {
	case RootTag:
		keys, r, e := UnpackKeySet(body)
		parsed, rest, err = &Root{Keys: keys}, r, e

	case ZoneTag:
		keys, options, r, e := unpackKeysAndOptions(body)
		parsed, rest, err = &Zone{Keys: keys, Options: options}, r, e

	case IdentityTag:
		keys, options, r, e := unpackKeysAndOptions(body)
		parsed, rest, err = &Identity{Keys: keys, Options: options}, r, e

	case CollectionTag:
		keys, options, r, e := unpackKeysAndOptions(body)
		parsed, rest, err = &Collection{Keys: keys, Options: options}, r, e

	case KeysTag:
		keys, r, e := UnpackKeySet(body)
		parsed, rest, err = &Keys{Keys: keys}, r, e

	case OptionsTag:
		options, r, e := UnpackOptionList(body)
		parsed, rest, err = &Options{Options: options}, r, e

	default:
		return nil, fault.ErrInvalidRecordTag
	}
	if nil != err {
		return nil, err
	}

	bodyLength := len(body) - len(rest)

	signerBytes, rest, err := util.SplitSized(rest)
	if nil != err {
		return nil, err
	}
	signer, err := account.AccountFromBytes(signerBytes)
	if nil != err {
		return nil, err
	}

	signature, rest, err := util.SplitSized(rest)
	if nil != err {
		return nil, err
	}
	if 0 != len(rest) {
		return nil, fault.ErrInvalidBlockStructure
	}

	return &SignedRecord{
		RecordTag: tag,
		Record:    parsed,
		Body:      body[:bodyLength],
		Signer:    signer,
		Signature: account.Signature(signature),
	}, nil
}

// common body layout for the container records
func unpackKeysAndOptions(buffer []byte) (KeySet, OptionList, []byte, error) {
	keys, rest, err := UnpackKeySet(buffer)
	if nil != err {
		return nil, nil, nil, err
	}
	options, rest, err := UnpackOptionList(rest)
	if nil != err {
		return nil, nil, nil, err
	}
	return keys, options, rest, nil
}
