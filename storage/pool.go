// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_iterator "github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/blocktree-inc/blocktreed/blockdigest"
)

// table prefix for block data
const blockPrefix = 'B'

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// Pool - a LevelDB backed store
type Pool struct {
	database *leveldb.DB
	log      *logger.L
}

// NewPool - open up the database connection
func NewPool(database string, readOnly bool) (*Pool, error) {

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		db.Close()
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	// database was empty so tag as current version
	if 0 == version && !readOnly {
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	log := logger.New("storage")
	log.Infof("opened: %s  version: %d", database, currentDBVersion)

	return &Pool{
		database: db,
		log:      log,
	}, nil
}

// Close - close the database connection
func (p *Pool) Close() error {
	p.log.Info("closing…")
	return p.database.Close()
}

// prepend the table prefix onto a digest
func prefixKey(digest blockdigest.Digest) []byte {
	prefixedKey := make([]byte, 1, blockdigest.Length+1)
	prefixedKey[0] = blockPrefix
	return append(prefixedKey, digest[:]...)
}

// WriteBytes - store a value under its content digest
func (p *Pool) WriteBytes(data []byte) (blockdigest.Digest, error) {
	digest := blockdigest.NewDigest(data)
	err := p.database.Put(prefixKey(digest), data, nil)
	if nil != err {
		return blockdigest.Empty, err
	}
	return digest, nil
}

// ReadBytes - read a value for a given digest
//
// this returns the stored bytes - copy the result if it must be preserved
func (p *Pool) ReadBytes(digest blockdigest.Digest) []byte {
	value, err := p.database.Get(prefixKey(digest), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.ReadBytes", err)
	return value
}

// Has - check if a digest exists
func (p *Pool) Has(digest blockdigest.Digest) bool {
	value, err := p.database.Has(prefixKey(digest), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}

// Find - scan for the first value matching a predicate
func (p *Pool) Find(f func(digest blockdigest.Digest, data []byte) bool) []byte {
	var result []byte

	iter := p.newIterator(nil)
	for iter.Next() {
		digest, value, ok := splitElement(iter.Key(), iter.Value())
		if !ok {
			continue
		}
		if f(digest, value) {
			result = make([]byte, len(value))
			copy(result, value)
			break
		}
	}
	iter.Release()
	logger.PanicIfError("pool.Find", iter.Error())
	return result
}

// Map - call f for every stored element
func (p *Pool) Map(f func(digest blockdigest.Digest, data []byte)) {
	iter := p.newIterator(nil)
	for iter.Next() {
		digest, value, ok := splitElement(iter.Key(), iter.Value())
		if !ok {
			continue
		}
		f(digest, value)
	}
	iter.Release()
	logger.PanicIfError("pool.Map", iter.Error())
}

// ListKeys - all digests starting with a prefix
func (p *Pool) ListKeys(prefix []byte) []blockdigest.Digest {
	result := make([]blockdigest.Digest, 0, 16)

	iter := p.newIterator(prefix)
	for iter.Next() {
		digest, _, ok := splitElement(iter.Key(), nil)
		if !ok {
			continue
		}
		result = append(result, digest)
	}
	iter.Release()
	logger.PanicIfError("pool.ListKeys", iter.Error())
	return result
}

// Count - number of stored elements
func (p *Pool) Count() int {
	n := 0
	iter := p.newIterator(nil)
	for iter.Next() {
		if len(iter.Key()) == blockdigest.Length+1 {
			n += 1
		}
	}
	iter.Release()
	logger.PanicIfError("pool.Count", iter.Error())
	return n
}

// iterator over the block table restricted to a digest prefix
func (p *Pool) newIterator(prefix []byte) ldb_iterator.Iterator {
	start := append([]byte{blockPrefix}, prefix...)
	return p.database.NewIterator(ldb_util.BytesPrefix(start), nil)
}

// strip the table prefix and validate the key length
//
// value may be nil for key-only scans
func splitElement(key []byte, value []byte) (blockdigest.Digest, []byte, bool) {
	var digest blockdigest.Digest
	if len(key) != blockdigest.Length+1 || !bytes.HasPrefix(key, []byte{blockPrefix}) {
		return digest, nil, false
	}
	copy(digest[:], key[1:])
	return digest, value, true
}

// return the version number stored in the database, zero when absent
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))
	return db.Put(versionKey, currentVersion, nil)
}
