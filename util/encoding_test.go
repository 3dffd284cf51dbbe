// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/util"
)

// test fixed-width append/split pairing across all four widths
func TestFixedWidth(t *testing.T) {
	testData := []struct {
		value    uint64
		appendFn func([]byte, uint64) ([]byte, error)
		splitFn  func([]byte) (uint64, []byte, error)
		expected []byte
	}{
		{0x12, util.AppendUint8, util.SplitUint8, []byte{0x12}},
		{0xff, util.AppendUint8, util.SplitUint8, []byte{0xff}},
		{0x1234, util.AppendUint16, util.SplitUint16, []byte{0x12, 0x34}},
		{0x12345678, util.AppendUint32, util.SplitUint32, []byte{0x12, 0x34, 0x56, 0x78}},
		{0x123456789abcdef0, util.AppendUint64, util.SplitUint64,
			[]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}},
	}

	for i, item := range testData {
		buffer, err := item.appendFn([]byte{}, item.value)
		if nil != err {
			t.Fatalf("%d: append error: %s", i, err)
		}
		if !bytes.Equal(item.expected, buffer) {
			t.Errorf("%d: packed: %x  expected: %x", i, buffer, item.expected)
		}

		value, rest, err := item.splitFn(buffer)
		if nil != err {
			t.Fatalf("%d: split error: %s", i, err)
		}
		if item.value != value {
			t.Errorf("%d: value: %x  expected: %x", i, value, item.value)
		}
		if 0 != len(rest) {
			t.Errorf("%d: %d residual bytes", i, len(rest))
		}
	}
}

// out of range values must be rejected
func TestOutOfRange(t *testing.T) {
	if _, err := util.AppendUint8(nil, 0x100); fault.ErrArgumentOutOfBounds != err {
		t.Errorf("uint8 error: %v  expected: %v", err, fault.ErrArgumentOutOfBounds)
	}
	if _, err := util.AppendUint16(nil, 0x10000); fault.ErrArgumentOutOfBounds != err {
		t.Errorf("uint16 error: %v  expected: %v", err, fault.ErrArgumentOutOfBounds)
	}
	if _, err := util.AppendUint32(nil, 0x100000000); fault.ErrArgumentOutOfBounds != err {
		t.Errorf("uint32 error: %v  expected: %v", err, fault.ErrArgumentOutOfBounds)
	}
}

// truncated buffers must be rejected
func TestTruncated(t *testing.T) {
	if _, _, err := util.SplitUint64([]byte{1, 2, 3}); fault.ErrArgumentOutOfBounds != err {
		t.Errorf("uint64 error: %v  expected: %v", err, fault.ErrArgumentOutOfBounds)
	}
	if _, _, err := util.SplitUint16([]byte{1}); fault.ErrArgumentOutOfBounds != err {
		t.Errorf("uint16 error: %v  expected: %v", err, fault.ErrArgumentOutOfBounds)
	}
	if _, _, err := util.SplitSized([]byte{0x00, 0x05, 'a', 'b'}); fault.ErrArgumentOutOfBounds != err {
		t.Errorf("sized error: %v  expected: %v", err, fault.ErrArgumentOutOfBounds)
	}
}

// length-prefixed variable field round trip
func TestSized(t *testing.T) {
	data := []byte("a variable length field")

	buffer, err := util.AppendSized([]byte{0xaa}, data)
	if nil != err {
		t.Fatalf("append sized error: %s", err)
	}

	expected := append([]byte{0xaa, 0x00, byte(len(data))}, data...)
	if !bytes.Equal(expected, buffer) {
		t.Errorf("packed: %x  expected: %x", buffer, expected)
	}

	field, rest, err := util.SplitSized(buffer[1:])
	if nil != err {
		t.Fatalf("split sized error: %s", err)
	}
	if !bytes.Equal(data, field) {
		t.Errorf("field: %q  expected: %q", field, data)
	}
	if 0 != len(rest) {
		t.Errorf("%d residual bytes", len(rest))
	}

	// empty field is a legal encoding
	buffer, err = util.AppendSized(nil, nil)
	if nil != err {
		t.Fatalf("append empty error: %s", err)
	}
	if !bytes.Equal([]byte{0x00, 0x00}, buffer) {
		t.Errorf("packed: %x  expected: 0000", buffer)
	}
}
