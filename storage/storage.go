// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/blocktree-inc/blocktreed/blockdigest"
)

// Store - the byte store consumed by the blockchain layer
//
// all indices over the store are caches; the store itself is the only
// persistent structure
type Store interface {

	// WriteBytes - persist a value keyed by its content digest
	WriteBytes(data []byte) (blockdigest.Digest, error)

	// ReadBytes - fetch a value by digest; nil when not present
	ReadBytes(digest blockdigest.Digest) []byte

	// Has - check whether a digest is present
	Has(digest blockdigest.Digest) bool

	// Find - return the first value for which f reports true, nil when none
	//
	// iteration order is unspecified
	Find(f func(digest blockdigest.Digest, data []byte) bool) []byte

	// Map - call f for every stored element
	Map(f func(digest blockdigest.Digest, data []byte))

	// ListKeys - all digests whose bytes start with prefix; all for an empty prefix
	ListKeys(prefix []byte) []blockdigest.Digest

	// Count - number of stored elements
	Count() int

	// Close - release the underlying resources
	Close() error
}
