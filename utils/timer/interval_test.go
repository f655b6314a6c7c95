// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package timer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAtomicIntervalGate(t *testing.T) {
	require := require.New(t)

	interval := &AtomicInterval{}

	// The gate has never fired, so the first claim wins and an immediate
	// retry loses.
	require.True(interval.ShouldUpdate(1000))
	require.False(interval.ShouldUpdate(1000))

	time.Sleep(15 * time.Millisecond)
	require.True(interval.ShouldUpdate(10))
}

func TestAtomicIntervalSingleWinner(t *testing.T) {
	require := require.New(t)

	interval := &AtomicInterval{}
	var (
		wins atomic.Int64
		wg   sync.WaitGroup
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if interval.ShouldUpdate(1000) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(int64(1), wins.Load())
}
