// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package shred

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/turbine/core"
)

type testSnapshot struct {
	slot uint64
}

func (s *testSnapshot) Slot() uint64 {
	return s.slot
}

func (s *testSnapshot) EpochSchedule() core.EpochSchedule {
	return core.EpochSchedule{SlotsPerEpoch: 100}
}

func TestShredAccessors(t *testing.T) {
	require := require.New(t)

	payload := []byte{0xde, 0xad}
	s := New(7, 3, Coding, payload)

	require.Equal(uint64(7), s.Slot())
	require.Equal(uint32(3), s.Index())
	require.Equal(Coding, s.Type())
	require.Equal(payload, s.Payload())
}

func TestShredSeed(t *testing.T) {
	require := require.New(t)

	leaderA := ids.BuildTestNodeID([]byte{0x01})
	leaderB := ids.BuildTestNodeID([]byte{0x02})
	root := &testSnapshot{slot: 0}

	s := New(1, 5, Data, []byte("payload"))

	// The seed is a pure function of position, type and leader; the payload
	// and any node-local state stay out of it.
	require.Equal(s.Seed(leaderA, root), s.Seed(leaderA, root))
	require.Equal(
		s.Seed(leaderA, root),
		New(1, 5, Data, []byte("other payload")).Seed(leaderA, root),
	)
	require.Equal(
		s.Seed(leaderA, root),
		s.Seed(leaderA, &testSnapshot{slot: 999}),
	)

	require.NotEqual(s.Seed(leaderA, root), s.Seed(leaderB, root))
	require.NotEqual(s.Seed(leaderA, root), New(2, 5, Data, nil).Seed(leaderA, root))
	require.NotEqual(s.Seed(leaderA, root), New(1, 6, Data, nil).Seed(leaderA, root))
	require.NotEqual(s.Seed(leaderA, root), New(1, 5, Coding, nil).Seed(leaderA, root))
}
