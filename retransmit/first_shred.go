// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package retransmit

import (
	"sync"

	"github.com/luxfi/turbine/core"
	"github.com/luxfi/turbine/utils/set"
)

// FirstShredTracker remembers which slots a shred has ever been seen for, so
// the stage raises exactly one slot-started observation per slot. Slots at
// or below the root are finalized and never reported.
type FirstShredTracker struct {
	gcThreshold int

	mu    sync.Mutex
	slots set.Set[uint64]
}

// NewFirstShredTracker returns a tracker that garbage-collects once more
// than gcThreshold slots are held.
func NewFirstShredTracker(gcThreshold int) *FirstShredTracker {
	return &FirstShredTracker{
		gcThreshold: gcThreshold,
		slots:       set.NewSet[uint64](gcThreshold),
	}
}

// CheckFirstShredReceived returns true iff this is the first shred observed
// for slot. Inserts prune every slot at or below the root once the set
// grows past the threshold, which bounds membership across root advances.
func (t *FirstShredTracker) CheckFirstShredReceived(slot uint64, root core.Snapshot) bool {
	rootSlot := root.Slot()
	if slot <= rootSlot {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.slots.Contains(slot) {
		return false
	}
	t.slots.Add(slot)
	if t.slots.Len() > t.gcThreshold {
		for s := range t.slots {
			if s <= rootSlot {
				t.slots.Remove(s)
			}
		}
	}
	return true
}

// Len returns the number of tracked slots.
func (t *FirstShredTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots.Len()
}
