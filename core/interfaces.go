// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package core declares the collaborator interfaces the retransmit stage
// consumes. The implementations live with the ledger, the leader schedule,
// and the gossip layer; this package only pins down the surface used here.
package core

import "github.com/luxfi/ids"

// EpochSchedule quantizes slots into epochs. Membership and stake are fixed
// within an epoch.
type EpochSchedule struct {
	SlotsPerEpoch uint64
}

// Epoch returns the epoch containing slot.
func (es EpochSchedule) Epoch(slot uint64) uint64 {
	if es.SlotsPerEpoch == 0 {
		return 0
	}
	return slot / es.SlotsPerEpoch
}

// Snapshot is a read-only view of ledger state pinned at a slot.
type Snapshot interface {
	// Slot returns the slot this snapshot is pinned at.
	Slot() uint64

	// EpochSchedule returns the epoch schedule in effect.
	EpochSchedule() EpochSchedule
}

// SnapshotProvider yields the current working and root snapshots. Workers
// read both once per batch; slight staleness is tolerated.
type SnapshotProvider interface {
	Read() (working Snapshot, root Snapshot)
}

// LeaderSchedule resolves the block producer of a slot.
type LeaderSchedule interface {
	// LeaderAt returns the leader of slot, resolved against the working
	// snapshot. The second return is false when the leader is unknown.
	LeaderAt(slot uint64, working Snapshot) (ids.NodeID, bool)
}
