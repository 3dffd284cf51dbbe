// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sync"

	"github.com/blocktree-inc/blocktreed/blockdigest"
)

// Memory - a map backed store for tests
type Memory struct {
	sync.RWMutex
	elements map[blockdigest.Digest][]byte
}

// NewMemory - create an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		elements: make(map[blockdigest.Digest][]byte),
	}
}

// WriteBytes - store a value under its content digest
func (m *Memory) WriteBytes(data []byte) (blockdigest.Digest, error) {
	digest := blockdigest.NewDigest(data)

	stored := make([]byte, len(data))
	copy(stored, data)

	m.Lock()
	m.elements[digest] = stored
	m.Unlock()

	return digest, nil
}

// ReadBytes - fetch a value by digest
func (m *Memory) ReadBytes(digest blockdigest.Digest) []byte {
	m.RLock()
	defer m.RUnlock()

	value, ok := m.elements[digest]
	if !ok {
		return nil
	}
	result := make([]byte, len(value))
	copy(result, value)
	return result
}

// Has - check if a digest exists
func (m *Memory) Has(digest blockdigest.Digest) bool {
	m.RLock()
	defer m.RUnlock()

	_, ok := m.elements[digest]
	return ok
}

// Find - scan for the first value matching a predicate
func (m *Memory) Find(f func(digest blockdigest.Digest, data []byte) bool) []byte {
	m.RLock()
	defer m.RUnlock()

	for digest, value := range m.elements {
		if f(digest, value) {
			result := make([]byte, len(value))
			copy(result, value)
			return result
		}
	}
	return nil
}

// Map - call f for every stored element
func (m *Memory) Map(f func(digest blockdigest.Digest, data []byte)) {
	m.RLock()
	defer m.RUnlock()

	for digest, value := range m.elements {
		f(digest, value)
	}
}

// ListKeys - all digests starting with a prefix
func (m *Memory) ListKeys(prefix []byte) []blockdigest.Digest {
	m.RLock()
	defer m.RUnlock()

	result := make([]blockdigest.Digest, 0, len(m.elements))
	for digest := range m.elements {
		if bytes.HasPrefix(digest[:], prefix) {
			result = append(result, digest)
		}
	}
	return result
}

// Count - number of stored elements
func (m *Memory) Count() int {
	m.RLock()
	defer m.RUnlock()

	return len(m.elements)
}

// Close - nothing to release
func (m *Memory) Close() error {
	return nil
}
