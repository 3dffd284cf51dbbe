// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treerecord_test

import (
	"bytes"
	"testing"

	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/keypair"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// pack a signed zone record and unpack it at the same position
func TestZoneRecord(t *testing.T) {
	kp, err := keypair.Generate()
	if nil != err {
		t.Fatalf("generate error: %s", err)
	}

	record := &treerecord.Zone{
		Keys: treerecord.KeySet{
			treerecord.WriteAction: []treerecord.AuthorizedKey{
				{
					Account:   kp.Account(),
					ValidFrom: 1000,
					ValidTo:   treerecord.ForeverTimestamp,
				},
			},
		},
		Options: treerecord.OptionList{
			{Key: "name", Value: "europe"},
		},
	}

	prev := blockdigest.Empty
	parent := blockdigest.NewDigest([]byte("the parent zone"))

	body, err := record.PackBody()
	if nil != err {
		t.Fatalf("pack body error: %s", err)
	}
	message := treerecord.SigningMessage(prev, parent, record.Tag(), body)
	signature := kp.Sign(message)

	packed, err := treerecord.Pack(record, kp.Account(), signature)
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	if treerecord.ZoneTag != packed.Tag() {
		t.Errorf("tag: %d  expected: %d", packed.Tag(), treerecord.ZoneTag)
	}

	signed, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}

	zone, ok := signed.Record.(*treerecord.Zone)
	if !ok {
		t.Fatalf("did not unpack to Zone: %T", signed.Record)
	}
	if "europe" != zone.Options.Name() {
		t.Errorf("name: %q  expected: %q", zone.Options.Name(), "europe")
	}
	if !zone.Keys.Covers(treerecord.WriteAction, kp.Account(), 2000) {
		t.Error("write key lost in round trip")
	}
	if !bytes.Equal(body, signed.Body) {
		t.Errorf("body: %x  expected: %x", signed.Body, body)
	}

	// the recovered envelope verifies at the original position
	recovered := treerecord.SigningMessage(prev, parent, signed.RecordTag, signed.Body)
	if err := signed.Signer.CheckSignature(recovered, signed.Signature); nil != err {
		t.Errorf("signature check error: %s", err)
	}

	// and fails at any other position
	elsewhere := treerecord.SigningMessage(prev, blockdigest.NewDigest([]byte("another parent")), signed.RecordTag, signed.Body)
	if err := signed.Signer.CheckSignature(elsewhere, signed.Signature); fault.ErrSignatureDoesNotMatch != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrSignatureDoesNotMatch)
	}
}

// key validity windows
func TestKeySetCovers(t *testing.T) {
	kp, _ := keypair.Generate()
	other, _ := keypair.Generate()

	keySet := treerecord.KeySet{
		treerecord.ReadAction: []treerecord.AuthorizedKey{
			{Account: kp.Account(), ValidFrom: 100, ValidTo: 200},
		},
		treerecord.WriteAction: []treerecord.AuthorizedKey{
			{Account: kp.Account(), ValidFrom: 100, ValidTo: treerecord.ForeverTimestamp},
		},
	}

	testData := []struct {
		action    treerecord.KeyAction
		timestamp uint64
		covered   bool
	}{
		{treerecord.ReadAction, 99, false},  // before the window
		{treerecord.ReadAction, 100, true},  // window start is inclusive
		{treerecord.ReadAction, 199, true},  // still inside
		{treerecord.ReadAction, 200, false}, // window end is exclusive
		{treerecord.WriteAction, 100, true},
		{treerecord.WriteAction, 1 << 62, true}, // forever never expires
	}

	for i, item := range testData {
		covered := keySet.Covers(item.action, kp.Account(), item.timestamp)
		if item.covered != covered {
			t.Errorf("%d: covers: %v  expected: %v", i, covered, item.covered)
		}
	}

	if keySet.Covers(treerecord.WriteAction, other.Account(), 150) {
		t.Error("unrelated key covered")
	}
}

// key set wire round trip preserves windows and secrets
func TestKeySetPack(t *testing.T) {
	kp, _ := keypair.Generate()

	keySet := treerecord.KeySet{
		treerecord.WriteAction: []treerecord.AuthorizedKey{
			{
				Account:   kp.Account(),
				Secret:    []byte("encrypted private key"),
				ValidFrom: 5,
				ValidTo:   treerecord.ForeverTimestamp,
			},
		},
	}

	packed, err := keySet.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	back, rest, err := treerecord.UnpackKeySet(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if 0 != len(rest) {
		t.Errorf("%d residual bytes", len(rest))
	}

	entries := back[treerecord.WriteAction]
	if 1 != len(entries) {
		t.Fatalf("entries: %d  expected: 1", len(entries))
	}
	if !entries[0].Account.Equal(kp.Account()) {
		t.Error("account lost in round trip")
	}
	if !bytes.Equal([]byte("encrypted private key"), entries[0].Secret) {
		t.Errorf("secret: %q", entries[0].Secret)
	}
	if 5 != entries[0].ValidFrom || treerecord.ForeverTimestamp != entries[0].ValidTo {
		t.Errorf("window: %d..%d", entries[0].ValidFrom, entries[0].ValidTo)
	}

	secrets := back.Secrets(treerecord.WriteAction)
	if 1 != len(secrets) {
		t.Fatalf("secrets: %d  expected: 1", len(secrets))
	}
}

// later options shadow earlier ones
func TestOptionShadowing(t *testing.T) {
	options := treerecord.OptionList{
		{Key: "name", Value: "OLD NAME"},
		{Key: "region", Value: "east"},
		{Key: "name", Value: "NEW NAME"},
	}

	if "NEW NAME" != options.Name() {
		t.Errorf("name: %q  expected: %q", options.Name(), "NEW NAME")
	}
	if value, ok := options.Get("region"); !ok || "east" != value {
		t.Errorf("region: %q, %v", value, ok)
	}
	if _, ok := options.Get("absent"); ok {
		t.Error("absent key reported present")
	}
}

// unknown tags are rejected
func TestInvalidTag(t *testing.T) {
	_, err := treerecord.Packed{byte(treerecord.InvalidTag)}.Unpack()
	if fault.ErrInvalidRecordTag != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrInvalidRecordTag)
	}

	_, err = treerecord.Packed{}.Unpack()
	if fault.ErrInvalidRecordTag != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrInvalidRecordTag)
	}

	if treerecord.NullTag != (treerecord.Packed{}).Tag() {
		t.Error("empty payload has a tag")
	}
	if treerecord.InvalidTag != (treerecord.Packed{0x7f}).Tag() {
		t.Error("out of range tag not clamped to invalid")
	}
}
