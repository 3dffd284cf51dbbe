// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/blocktree-inc/blocktreed/blockdigest"
)

// Reason - why a validation walk stopped
type Reason string

// validation failure reasons
const (
	ReasonNone               Reason = ""
	ReasonMissingBlock       Reason = "missingBlock"
	ReasonInvalidTimestamp   Reason = "invalidTimestamp"
	ReasonMissingParentBlock Reason = "missingParentBlock"
)

// Report - the outcome of a validation walk
//
// validation is total: problems are reported, never raised
type Report struct {
	IsValid    bool               `json:"isValid"`
	BlockCount int                `json:"blockCount"`
	Reason     Reason             `json:"reason,omitempty"`
	Block      blockdigest.Digest `json:"block,omitempty"`
}

// Validate - walk prev links from a tip and check chain integrity
//
// a missing link reports missingBlock naming the unresolvable digest;
// a timestamp below its predecessor's reports invalidTimestamp naming
// the offending block; SkipValidation skips only the timestamp check,
// missing or unreadable links are still reported
func (bc *Blockchain) Validate(tip blockdigest.Digest, options *Options) Report {

	checkTimestamps := nil == options || !options.SkipValidation

	report := Report{
		IsValid: true,
	}

	current := tip
	var child *Block
	var childDigest blockdigest.Digest

	for !current.IsEmpty() {
		data := bc.store.ReadBytes(current)
		if nil == data {
			report.IsValid = false
			report.Reason = ReasonMissingBlock
			report.Block = current
			return report
		}

		block, err := PackedBlock(data).Unpack()
		if nil != err {
			report.IsValid = false
			report.Reason = ReasonMissingBlock
			report.Block = current
			return report
		}

		if checkTimestamps && nil != child && child.Timestamp < block.Timestamp {
			report.IsValid = false
			report.Reason = ReasonInvalidTimestamp
			report.Block = childDigest
			return report
		}

		report.BlockCount += 1
		child = block
		childDigest = current
		current = block.PrevBlock
	}

	return report
}
