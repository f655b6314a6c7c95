// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package retransmit

import (
	"sync/atomic"
	"time"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/luxfi/turbine/utils/timer"
	"github.com/luxfi/turbine/utils/wrappers"
)

// stats accumulates per-iteration measurements across all workers and
// flushes them on a shared wall-clock gate. Counters reset on every flush.
type stats struct {
	numShreds        atomic.Uint64
	numShredsSkipped atomic.Uint64
	totalBatches     atomic.Uint64
	totalTime        atomic.Uint64 // micros
	epochFetch       atomic.Uint64 // micros
	epochCacheUpdate atomic.Uint64 // micros
	computePeers     atomic.Uint64 // micros
	retransmitTime   atomic.Uint64 // micros

	flushInterval timer.AtomicInterval

	shredsCount        prometheus.Counter
	shredsSkippedCount prometheus.Counter
	batchesCount       prometheus.Counter
	sendErrorsCount    prometheus.Counter
	iterErrorsCount    prometheus.Counter
	numPeersGauge      prometheus.Gauge
}

func newStats(reg prometheus.Registerer) (*stats, error) {
	s := &stats{
		shredsCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retransmit",
			Name:      "shreds",
			Help:      "Total # of shreds pulled from the input queue",
		}),
		shredsSkippedCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retransmit",
			Name:      "shreds_skipped",
			Help:      "Total # of shreds dropped by the dedup filter",
		}),
		batchesCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retransmit",
			Name:      "batches",
			Help:      "Total # of batches processed",
		}),
		sendErrorsCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retransmit",
			Name:      "send_errors",
			Help:      "Total # of failed UDP sends",
		}),
		iterErrorsCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retransmit",
			Name:      "iteration_errors",
			Help:      "Total # of failed worker iterations",
		}),
		numPeersGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "retransmit",
			Name:      "num_peers",
			Help:      "# of cluster peers at last flush",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		reg.Register(s.shredsCount),
		reg.Register(s.shredsSkippedCount),
		reg.Register(s.batchesCount),
		reg.Register(s.sendErrorsCount),
		reg.Register(s.iterErrorsCount),
		reg.Register(s.numPeersGauge),
	)
	return s, errs.Err()
}

type batchMeasurements struct {
	numShreds        int
	numShredsSkipped int
	totalTime        time.Duration
	epochFetch       time.Duration
	epochCacheUpdate time.Duration
	computePeers     time.Duration
	retransmitTime   time.Duration
}

// update folds one batch's measurements in and, at most once per interval
// across all workers, swaps the counters to zero and emits a datapoint.
func (s *stats) update(log log.Logger, m batchMeasurements, numPeers int, interval time.Duration) {
	s.numShreds.Add(uint64(m.numShreds))
	s.numShredsSkipped.Add(uint64(m.numShredsSkipped))
	s.totalBatches.Add(1)
	s.totalTime.Add(uint64(m.totalTime.Microseconds()))
	s.epochFetch.Add(uint64(m.epochFetch.Microseconds()))
	s.epochCacheUpdate.Add(uint64(m.epochCacheUpdate.Microseconds()))
	s.computePeers.Add(uint64(m.computePeers.Microseconds()))
	s.retransmitTime.Add(uint64(m.retransmitTime.Microseconds()))

	if !s.flushInterval.ShouldUpdate(interval.Milliseconds()) {
		return
	}

	numShreds := s.numShreds.Swap(0)
	numSkipped := s.numShredsSkipped.Swap(0)
	numBatches := s.totalBatches.Swap(0)

	s.shredsCount.Add(float64(numShreds))
	s.shredsSkippedCount.Add(float64(numSkipped))
	s.batchesCount.Add(float64(numBatches))
	s.numPeersGauge.Set(float64(numPeers))

	log.Info("retransmit stage",
		zap.Uint64("numShreds", numShreds),
		zap.Uint64("numShredsSkipped", numSkipped),
		zap.Uint64("totalBatches", numBatches),
		zap.Uint64("totalTimeMicros", s.totalTime.Swap(0)),
		zap.Uint64("epochFetchMicros", s.epochFetch.Swap(0)),
		zap.Uint64("epochCacheUpdateMicros", s.epochCacheUpdate.Swap(0)),
		zap.Uint64("computePeersMicros", s.computePeers.Swap(0)),
		zap.Uint64("retransmitMicros", s.retransmitTime.Swap(0)),
		zap.Int("numPeers", numPeers),
	)
}
