// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package timer

import (
	"sync/atomic"
	"time"
)

// AtomicInterval is a wall-clock rate gate shared by concurrent workers.
// ShouldUpdate succeeds for exactly one caller per elapsed interval; the
// compare-and-swap loses every race it should lose.
type AtomicInterval struct {
	lastMS atomic.Int64
}

// ShouldUpdate returns true iff more than intervalMS milliseconds have passed
// since the last successful call, and atomically claims the new timestamp.
func (i *AtomicInterval) ShouldUpdate(intervalMS int64) bool {
	now := time.Now().UnixMilli()
	last := i.lastMS.Load()
	return now-last > intervalMS && i.lastMS.CompareAndSwap(last, now)
}
