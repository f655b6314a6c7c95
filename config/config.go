// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"time"
)

// Error variables for parameter validation
var (
	ErrInvalidFanout            = errors.New("fanout must be >= 2")
	ErrInvalidDuplicateCount    = errors.New("max duplicate count must be >= 1")
	ErrInvalidFilterSize        = errors.New("dedup filter size must be >= 1")
	ErrInvalidBatchSize         = errors.New("max batch size must be >= 1")
	ErrInvalidCacheCap          = errors.New("cluster nodes cache capacity must be >= 1")
	ErrInvalidCacheTTL          = errors.New("cluster nodes cache ttl must be positive")
	ErrInvalidRekeyInterval     = errors.New("hasher rekey interval must be positive")
	ErrInvalidGCThreshold       = errors.New("first shred gc threshold must be >= 1")
	ErrInvalidStatsInterval     = errors.New("stats flush interval must be positive")
	ErrInvalidRecvTimeout       = errors.New("receive timeout must be positive")
)

// Parameters defines the retransmit protocol parameters. Fanout and the
// duplicate count are cluster-wide constants: every node must agree on them
// or the delivery trees diverge. The rest are local tuning knobs.
type Parameters struct {
	// Fanout is the width of each neighborhood in the delivery tree.
	Fanout int

	// MaxDuplicateCount bounds how many distinct payloads are forwarded for
	// one (slot, index, type) position.
	MaxDuplicateCount int

	// DedupFilterSize bounds the dedup LRU.
	DedupFilterSize int

	// MaxBatchSize bounds how many shreds a worker drains from the queue
	// between polls.
	MaxBatchSize int

	// ClusterNodesCacheCap bounds how many epochs of peer tables are kept.
	ClusterNodesCacheCap int

	// ClusterNodesCacheTTL bounds how stale a cached peer table may be.
	ClusterNodesCacheTTL time.Duration

	// HasherRekeyInterval bounds how often the dedup hasher is rekeyed.
	HasherRekeyInterval time.Duration

	// FirstShredGCThreshold triggers garbage collection of the first-shred
	// slot set.
	FirstShredGCThreshold int

	// StatsFlushInterval gates the periodic stats flush.
	StatsFlushInterval time.Duration

	// RecvTimeout bounds the blocking receive on the input queue.
	RecvTimeout time.Duration
}

// DefaultParameters returns the cluster defaults.
func DefaultParameters() Parameters {
	return Parameters{
		Fanout:                200,
		MaxDuplicateCount:     2,
		DedupFilterSize:       10_000,
		MaxBatchSize:          100,
		ClusterNodesCacheCap:  8,
		ClusterNodesCacheTTL:  5 * time.Second,
		HasherRekeyInterval:   time.Second,
		FirstShredGCThreshold: 100,
		StatsFlushInterval:    2 * time.Second,
		RecvTimeout:           time.Second,
	}
}

// Valid returns nil iff the parameters describe a runnable configuration.
func (p Parameters) Valid() error {
	switch {
	case p.Fanout < 2:
		return ErrInvalidFanout
	case p.MaxDuplicateCount < 1:
		return ErrInvalidDuplicateCount
	case p.DedupFilterSize < 1:
		return ErrInvalidFilterSize
	case p.MaxBatchSize < 1:
		return ErrInvalidBatchSize
	case p.ClusterNodesCacheCap < 1:
		return ErrInvalidCacheCap
	case p.ClusterNodesCacheTTL <= 0:
		return ErrInvalidCacheTTL
	case p.HasherRekeyInterval <= 0:
		return ErrInvalidRekeyInterval
	case p.FirstShredGCThreshold < 1:
		return ErrInvalidGCThreshold
	case p.StatsFlushInterval <= 0:
		return ErrInvalidStatsInterval
	case p.RecvTimeout <= 0:
		return ErrInvalidRecvTimeout
	default:
		return nil
	}
}
