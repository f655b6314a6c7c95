// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxSlotsMonotonic(t *testing.T) {
	require := require.New(t)

	m := &MaxSlots{}
	m.UpdateRetransmit(5)
	require.Equal(uint64(5), m.Retransmit.Load())

	m.UpdateRetransmit(3)
	require.Equal(uint64(5), m.Retransmit.Load())

	m.UpdateRetransmit(9)
	require.Equal(uint64(9), m.Retransmit.Load())
}

func TestMaxSlotsConcurrent(t *testing.T) {
	require := require.New(t)

	m := &MaxSlots{}
	var wg sync.WaitGroup
	for i := 1; i <= 64; i++ {
		wg.Add(1)
		go func(slot uint64) {
			defer wg.Done()
			m.UpdateRetransmit(slot)
		}(uint64(i))
	}
	wg.Wait()
	require.Equal(uint64(64), m.Retransmit.Load())
}

func TestEpochSchedule(t *testing.T) {
	require := require.New(t)

	schedule := EpochSchedule{SlotsPerEpoch: 100}
	require.Zero(schedule.Epoch(0))
	require.Zero(schedule.Epoch(99))
	require.Equal(uint64(1), schedule.Epoch(100))
	require.Equal(uint64(7), schedule.Epoch(799))

	// A zero schedule degrades to a single epoch instead of dividing by
	// zero.
	require.Zero(EpochSchedule{}.Epoch(12345))
}
