// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treerecord

import (
	"math"

	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/util"
)

// KeyAction - the action a key is authorized for
type KeyAction uint8

// enumerate the possible actions
const (
	// null marks beginning of list - not used as an action
	NullAction = KeyAction(iota)

	ReadAction  = KeyAction(iota)
	WriteAction = KeyAction(iota)

	// this item must be last
	invalidAction = KeyAction(iota)
)

// ForeverTimestamp - the "never expires" sentinel for valid_to
const ForeverTimestamp = uint64(math.MaxUint64)

// AuthorizedKey - one time-windowed public key
//
// the secret slot optionally carries the matching private key
// encrypted for the secrets broker; the core treats it as opaque
type AuthorizedKey struct {
	Account   *account.Account `json:"account"`
	Secret    []byte           `json:"secret,omitempty"`
	ValidFrom uint64           `json:"validFrom,string"`
	ValidTo   uint64           `json:"validTo,string"`
}

// Covers - whether this key authorizes at a given time
func (key *AuthorizedKey) Covers(signer *account.Account, timestamp uint64) bool {
	if !key.Account.Equal(signer) {
		return false
	}
	if timestamp < key.ValidFrom {
		return false
	}
	if ForeverTimestamp != key.ValidTo && timestamp >= key.ValidTo {
		return false
	}
	return true
}

// KeySet - a mapping from action to an ordered list of authorized keys
type KeySet map[KeyAction][]AuthorizedKey

// packing order: actions are always emitted read first then write so
// identical sets pack to identical bytes
var packOrder = []KeyAction{ReadAction, WriteAction}

// Covers - whether any key of the action list authorizes at a given time
func (keySet KeySet) Covers(action KeyAction, signer *account.Account, timestamp uint64) bool {
	for _, key := range keySet[action] {
		if key.Covers(signer, timestamp) {
			return true
		}
	}
	return false
}

// Lookup - the newest entry for a signing key, regardless of window
//
// within one set later grants shadow earlier ones, which is how a
// closed window revokes a key
func (keySet KeySet) Lookup(action KeyAction, signer *account.Account) (*AuthorizedKey, bool) {
	entries := keySet[action]
	for i := len(entries) - 1; i >= 0; i -= 1 {
		if entries[i].Account.Equal(signer) {
			return &entries[i], true
		}
	}
	return nil, false
}

// Secrets - the non-empty secret slots for an action, newest grant first
func (keySet KeySet) Secrets(action KeyAction) [][]byte {
	entries := keySet[action]
	result := make([][]byte, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i -= 1 {
		if 0 != len(entries[i].Secret) {
			result = append(result, entries[i].Secret)
		}
	}
	return result
}

// Pack - serialize a key set
//
//	1 byte   action count
//	per action:
//	  1 byte   action
//	  2 bytes  entry count
//	  per entry: sized account ++ sized secret ++ valid from ++ valid to
func (keySet KeySet) Pack() ([]byte, error) {
	actionCount := 0
	for _, action := range packOrder {
		if len(keySet[action]) > 0 {
			actionCount += 1
		}
	}

	buffer, err := util.AppendUint8(nil, uint64(actionCount))
	if nil != err {
		return nil, err
	}

	for _, action := range packOrder {
		entries := keySet[action]
		if 0 == len(entries) {
			continue
		}

		buffer, err = util.AppendUint8(buffer, uint64(action))
		if nil != err {
			return nil, err
		}
		buffer, err = util.AppendUint16(buffer, uint64(len(entries)))
		if nil != err {
			return nil, err
		}

		for _, entry := range entries {
			if nil == entry.Account {
				return nil, fault.ErrNotPublicKey
			}
			buffer, err = util.AppendSized(buffer, entry.Account.Bytes())
			if nil != err {
				return nil, err
			}
			buffer, err = util.AppendSized(buffer, entry.Secret)
			if nil != err {
				return nil, err
			}
			buffer, err = util.AppendUint64(buffer, entry.ValidFrom)
			if nil != err {
				return nil, err
			}
			buffer, err = util.AppendUint64(buffer, entry.ValidTo)
			if nil != err {
				return nil, err
			}
		}
	}

	return buffer, nil
}

// UnpackKeySet - deserialize a key set from the front of a buffer
//
// returns the set and the remainder of the buffer
func UnpackKeySet(buffer []byte) (KeySet, []byte, error) {
	actionCount, buffer, err := util.SplitUint8(buffer)
	if nil != err {
		return nil, nil, err
	}

	keySet := make(KeySet)
	for i := uint64(0); i < actionCount; i += 1 {

		actionValue, rest, err := util.SplitUint8(buffer)
		if nil != err {
			return nil, nil, err
		}
		buffer = rest

		action := KeyAction(actionValue)
		if NullAction == action || action >= invalidAction {
			return nil, nil, fault.ErrInvalidKeyAction
		}

		entryCount, rest, err := util.SplitUint16(buffer)
		if nil != err {
			return nil, nil, err
		}
		buffer = rest

		entries := make([]AuthorizedKey, 0, entryCount)
		for j := uint64(0); j < entryCount; j += 1 {

			accountBytes, rest, err := util.SplitSized(buffer)
			if nil != err {
				return nil, nil, err
			}
			signer, err := account.AccountFromBytes(accountBytes)
			if nil != err {
				return nil, nil, err
			}

			secret, rest, err := util.SplitSized(rest)
			if nil != err {
				return nil, nil, err
			}
			if 0 == len(secret) {
				secret = nil
			} else {
				secret = append([]byte{}, secret...)
			}

			validFrom, rest, err := util.SplitUint64(rest)
			if nil != err {
				return nil, nil, err
			}
			validTo, rest, err := util.SplitUint64(rest)
			if nil != err {
				return nil, nil, err
			}
			buffer = rest

			entries = append(entries, AuthorizedKey{
				Account:   signer,
				Secret:    secret,
				ValidFrom: validFrom,
				ValidTo:   validTo,
			})
		}
		keySet[action] = entries
	}

	return keySet, buffer, nil
}
