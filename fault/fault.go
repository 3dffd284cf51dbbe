// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// SerializationError - malformed bytes, out of range values, bad hashes
	SerializationError GenericError

	// InvalidBlockError - structural violations on blocks and links
	InvalidBlockError GenericError

	// InvalidSignatureError - signature verification and authorization failures
	InvalidSignatureError GenericError

	// InvalidKeyError - key material problems
	InvalidKeyError GenericError

	// InvalidRootError - root installation on a non-empty store
	InvalidRootError GenericError

	// NotFoundError - missing items outside the block structure
	NotFoundError GenericError

	// ProcessError - I/O and other operational failures
	ProcessError GenericError
)

// serialization errors
var (
	ErrInvalidBlockHash      = SerializationError("invalid block hash")
	ErrInvalidHash           = SerializationError("invalid hash")
	ErrArgumentOutOfBounds   = SerializationError("argument out of bounds")
	ErrInvalidLayer          = SerializationError("invalid layer")
	ErrInvalidRecordTag      = SerializationError("invalid record tag")
	ErrInvalidKeyAction      = SerializationError("invalid key action")
	ErrInvalidBlockStructure = SerializationError("invalid block structure")
)

// block errors
var (
	ErrBlockIsNull        = InvalidBlockError("block is null")
	ErrInvalidTimestamp   = InvalidBlockError("invalid timestamp")
	ErrNextBlockExists    = InvalidBlockError("next block exists")
	ErrInvalidParentBlock = InvalidBlockError("invalid parent block")
	ErrInvalidParentType  = InvalidBlockError("invalid parent type")
)

// signature errors
var (
	ErrSignatureDoesNotMatch = InvalidSignatureError("signature does not match")
	ErrSignatureUnauthorized = InvalidSignatureError("signature unauthorized")
	ErrSignatureNotFound     = InvalidSignatureError("signature not found")
)

// key errors
var (
	ErrKeyNotFound      = InvalidKeyError("key not found")
	ErrKeyExpired       = InvalidKeyError("key expired")
	ErrKeyRevoked       = InvalidKeyError("key revoked")
	ErrInvalidKeyLength = InvalidKeyError("key length is invalid")
	ErrNotPublicKey     = InvalidKeyError("not a public key")
	ErrChecksumMismatch = InvalidKeyError("checksum mismatch")
)

// root errors
var (
	ErrRootAlreadyInstalled = InvalidRootError("root already installed")
)

// miscellaneous errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ProcessError("already initialised")
	ErrCannotDecodeAccount  = ProcessError("cannot decode account")
	ErrIdentityNameNotFound = NotFoundError("identity name not found")
	ErrNotInitialised       = ProcessError("not initialised")
	ErrTokenDoesNotMatch    = InvalidSignatureError("token does not match")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e SerializationError) Error() string    { return string(e) }
func (e InvalidBlockError) Error() string     { return string(e) }
func (e InvalidSignatureError) Error() string { return string(e) }
func (e InvalidKeyError) Error() string       { return string(e) }
func (e InvalidRootError) Error() string      { return string(e) }
func (e NotFoundError) Error() string         { return string(e) }
func (e ProcessError) Error() string          { return string(e) }

// IsErrSerialization - determine the class of an error
func IsErrSerialization(e error) bool { _, ok := e.(SerializationError); return ok }

// IsErrInvalidBlock - determine the class of an error
func IsErrInvalidBlock(e error) bool { _, ok := e.(InvalidBlockError); return ok }

// IsErrInvalidSignature - determine the class of an error
func IsErrInvalidSignature(e error) bool { _, ok := e.(InvalidSignatureError); return ok }

// IsErrInvalidKey - determine the class of an error
func IsErrInvalidKey(e error) bool { _, ok := e.(InvalidKeyError); return ok }

// IsErrInvalidRoot - determine the class of an error
func IsErrInvalidRoot(e error) bool { _, ok := e.(InvalidRootError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
