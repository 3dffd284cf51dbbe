// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treerecord

import (
	"github.com/blocktree-inc/blocktreed/util"
)

// OptionItem - one named value
type OptionItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OptionList - ordered named values
//
// later items shadow earlier ones on lookup so an append is an update
type OptionList []OptionItem

// the conventional option naming a zone, identity or collection
const nameOption = "name"

// Get - the value for a key, last occurrence wins
func (options OptionList) Get(key string) (string, bool) {
	for i := len(options) - 1; i >= 0; i -= 1 {
		if key == options[i].Key {
			return options[i].Value, true
		}
	}
	return "", false
}

// Name - the conventional display name
func (options OptionList) Name() string {
	name, _ := options.Get(nameOption)
	return name
}

// Pack - serialize an option list
//
//	2 bytes  item count
//	per item: sized key ++ sized value
func (options OptionList) Pack() ([]byte, error) {
	buffer, err := util.AppendUint16(nil, uint64(len(options)))
	if nil != err {
		return nil, err
	}

	for _, item := range options {
		buffer, err = util.AppendSized(buffer, []byte(item.Key))
		if nil != err {
			return nil, err
		}
		buffer, err = util.AppendSized(buffer, []byte(item.Value))
		if nil != err {
			return nil, err
		}
	}
	return buffer, nil
}

// UnpackOptionList - deserialize an option list from the front of a buffer
//
// returns the list and the remainder of the buffer
func UnpackOptionList(buffer []byte) (OptionList, []byte, error) {
	itemCount, buffer, err := util.SplitUint16(buffer)
	if nil != err {
		return nil, nil, err
	}

	options := make(OptionList, 0, itemCount)
	for i := uint64(0); i < itemCount; i += 1 {
		key, rest, err := util.SplitSized(buffer)
		if nil != err {
			return nil, nil, err
		}
		value, rest, err := util.SplitSized(rest)
		if nil != err {
			return nil, nil, err
		}
		buffer = rest

		options = append(options, OptionItem{
			Key:   string(key),
			Value: string(value),
		})
	}

	return options, buffer, nil
}
