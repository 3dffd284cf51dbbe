// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chronology - the time source for block timestamps
//
// block timestamps must never decrease within a process, so the live
// clock latches its last reading; the stopped clock makes tests
// deterministic
package chronology

import (
	"sync"
	"time"
)

// Clock - yields 64 bit unsigned timestamps in seconds since the epoch
type Clock interface {
	Now() uint64
}

// live clock with a monotonic latch
type liveClock struct {
	sync.Mutex
	last uint64
}

// Live - create a clock over the system time
func Live() Clock {
	return &liveClock{}
}

func (c *liveClock) Now() uint64 {
	c.Lock()
	defer c.Unlock()

	now := uint64(time.Now().Unix())
	if now < c.last {
		now = c.last
	}
	c.last = now
	return now
}

// StoppedClock - a manually driven clock for tests
//
// queued timestamps are returned in order; when the queue drains the
// last queued value repeats
type StoppedClock struct {
	sync.Mutex
	queue []uint64
	last  uint64
}

// NewStopped - create a stopped clock with an initial reading
func NewStopped(initial uint64) *StoppedClock {
	return &StoppedClock{
		last: initial,
	}
}

// SetNextTimestamp - queue the reading returned by the next call to Now
func (c *StoppedClock) SetNextTimestamp(timestamp uint64) {
	c.Lock()
	c.queue = append(c.queue, timestamp)
	c.Unlock()
}

// Advance - move the repeating reading forward
func (c *StoppedClock) Advance(delta uint64) {
	c.Lock()
	c.last += delta
	c.Unlock()
}

// Now - the next queued reading, or the repeating one
func (c *StoppedClock) Now() uint64 {
	c.Lock()
	defer c.Unlock()

	if len(c.queue) > 0 {
		c.last = c.queue[0]
		c.queue = c.queue[1:]
	}
	return c.last
}
