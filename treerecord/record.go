// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treerecord

import (
	"github.com/blocktree-inc/blocktreed/account"
)

// TagType - type code for secure records
//
// this is encoded as a single byte at the start of the payload
type TagType uint8

// enumerate the possible record types
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	RootTag       = TagType(iota) // the single system-wide trust anchor
	ZoneTag       = TagType(iota) // a named authority region
	IdentityTag   = TagType(iota) // a principal within a zone
	CollectionTag = TagType(iota) // a container for domain data
	KeysTag       = TagType(iota) // key rotation on an existing chain
	OptionsTag    = TagType(iota) // named metadata on an existing chain

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic typed record interface
type Record interface {
	Tag() TagType
	PackBody() ([]byte, error)
}

// Root - the trust anchor record
type Root struct {
	Keys KeySet `json:"keys"`
}

// Zone - a named authority region; may nest under another zone
type Zone struct {
	Keys    KeySet     `json:"keys"` // may be empty
	Options OptionList `json:"options"`
}

// Identity - a principal within a zone
type Identity struct {
	Keys    KeySet     `json:"keys"` // may be empty
	Options OptionList `json:"options"`
}

// Collection - a container for domain data under an identity or zone
type Collection struct {
	Keys    KeySet     `json:"keys"` // may be empty
	Options OptionList `json:"options"`
}

// Keys - key rotation, addition or revocation on an existing chain
type Keys struct {
	Keys KeySet `json:"keys"`
}

// Options - named metadata appended to an existing chain
type Options struct {
	Options OptionList `json:"options"`
}

// Tag - returns the record type code
func (record *Root) Tag() TagType       { return RootTag }
func (record *Zone) Tag() TagType       { return ZoneTag }
func (record *Identity) Tag() TagType   { return IdentityTag }
func (record *Collection) Tag() TagType { return CollectionTag }
func (record *Keys) Tag() TagType       { return KeysTag }
func (record *Options) Tag() TagType    { return OptionsTag }

// RecordName - returns the name of a record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *Root, Root:
		return "Root", true

	case *Zone, Zone:
		return "Zone", true

	case *Identity, Identity:
		return "Identity", true

	case *Collection, Collection:
		return "Collection", true

	case *Keys, Keys:
		return "Keys", true

	case *Options, Options:
		return "Options", true

	default:
		return "*unknown*", false
	}
}

// SignedRecord - a fully parsed record with its signature envelope
type SignedRecord struct {
	RecordTag TagType           `json:"tag"`
	Record    Record            `json:"record"`
	Body      []byte            `json:"-"` // raw body bytes the signature covers
	Signer    *account.Account  `json:"signer"`
	Signature account.Signature `json:"signature"`
}

// EmbeddedKeys - the key set carried by a record, nil when it has none
func (signed *SignedRecord) EmbeddedKeys() KeySet {
	switch record := signed.Record.(type) {
	case *Root:
		return record.Keys
	case *Zone:
		return record.Keys
	case *Identity:
		return record.Keys
	case *Collection:
		return record.Keys
	case *Keys:
		return record.Keys
	default:
		return nil
	}
}
