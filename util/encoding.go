// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"

	"github.com/blocktree-inc/blocktreed/fault"
)

// maximum number of bytes in a length-prefixed variable field
// limited by the two byte length header
const MaximumSizedLength = 65535

// AppendUint8 - append a big-endian uint8 field to a buffer
//
// the value is range checked as the parameter type is widened for
// uniformity with the larger fields
func AppendUint8(buffer []byte, value uint64) ([]byte, error) {
	if value > 0xff {
		return nil, fault.ErrArgumentOutOfBounds
	}
	return append(buffer, byte(value)), nil
}

// AppendUint16 - append a big-endian uint16 field to a buffer
func AppendUint16(buffer []byte, value uint64) ([]byte, error) {
	if value > 0xffff {
		return nil, fault.ErrArgumentOutOfBounds
	}
	field := make([]byte, 2)
	binary.BigEndian.PutUint16(field, uint16(value))
	return append(buffer, field...), nil
}

// AppendUint32 - append a big-endian uint32 field to a buffer
func AppendUint32(buffer []byte, value uint64) ([]byte, error) {
	if value > 0xffffffff {
		return nil, fault.ErrArgumentOutOfBounds
	}
	field := make([]byte, 4)
	binary.BigEndian.PutUint32(field, uint32(value))
	return append(buffer, field...), nil
}

// AppendUint64 - append a big-endian uint64 field to a buffer
func AppendUint64(buffer []byte, value uint64) ([]byte, error) {
	field := make([]byte, 8)
	binary.BigEndian.PutUint64(field, value)
	return append(buffer, field...), nil
}

// SplitUint8 - take a uint8 field from the front of a buffer
//
// returns the value and the remainder of the buffer
func SplitUint8(buffer []byte) (uint64, []byte, error) {
	if len(buffer) < 1 {
		return 0, nil, fault.ErrArgumentOutOfBounds
	}
	return uint64(buffer[0]), buffer[1:], nil
}

// SplitUint16 - take a big-endian uint16 field from the front of a buffer
func SplitUint16(buffer []byte) (uint64, []byte, error) {
	if len(buffer) < 2 {
		return 0, nil, fault.ErrArgumentOutOfBounds
	}
	return uint64(binary.BigEndian.Uint16(buffer)), buffer[2:], nil
}

// SplitUint32 - take a big-endian uint32 field from the front of a buffer
func SplitUint32(buffer []byte) (uint64, []byte, error) {
	if len(buffer) < 4 {
		return 0, nil, fault.ErrArgumentOutOfBounds
	}
	return uint64(binary.BigEndian.Uint32(buffer)), buffer[4:], nil
}

// SplitUint64 - take a big-endian uint64 field from the front of a buffer
func SplitUint64(buffer []byte) (uint64, []byte, error) {
	if len(buffer) < 8 {
		return 0, nil, fault.ErrArgumentOutOfBounds
	}
	return binary.BigEndian.Uint64(buffer), buffer[8:], nil
}

// AppendSized - append a length-prefixed variable field to a buffer
//
// the field is prefixed by a big-endian uint16 byte count
func AppendSized(buffer []byte, data []byte) ([]byte, error) {
	if len(data) > MaximumSizedLength {
		return nil, fault.ErrArgumentOutOfBounds
	}
	buffer, err := AppendUint16(buffer, uint64(len(data)))
	if nil != err {
		return nil, err
	}
	return append(buffer, data...), nil
}

// SplitSized - take a length-prefixed variable field from the front of a buffer
//
// returns the field contents and the remainder of the buffer
func SplitSized(buffer []byte) ([]byte, []byte, error) {
	length, buffer, err := SplitUint16(buffer)
	if nil != err {
		return nil, nil, err
	}
	if uint64(len(buffer)) < length {
		return nil, nil, fault.ErrArgumentOutOfBounds
	}
	return buffer[:length], buffer[length:], nil
}

// SplitBytes - take a fixed count of bytes from the front of a buffer
func SplitBytes(buffer []byte, count int) ([]byte, []byte, error) {
	if count < 0 || len(buffer) < count {
		return nil, nil, fault.ErrArgumentOutOfBounds
	}
	return buffer[:count], buffer[count:], nil
}
