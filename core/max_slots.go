// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import "sync/atomic"

// MaxSlots publishes high-water slot marks observed by the node's pipeline
// stages. Readers poll; writers only ever move the marks forward.
type MaxSlots struct {
	Retransmit atomic.Uint64
}

// UpdateRetransmit raises the retransmit mark to slot if it is higher.
func (m *MaxSlots) UpdateRetransmit(slot uint64) {
	for {
		prev := m.Retransmit.Load()
		if slot <= prev || m.Retransmit.CompareAndSwap(prev, slot) {
			return
		}
	}
}
