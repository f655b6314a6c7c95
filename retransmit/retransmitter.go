// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package retransmit forwards shreds received from the leader or a prior
// retransmit layer to this node's peers in the per-shred delivery tree.
// Forwarding is best-effort UDP; the repair layer compensates for loss.
package retransmit

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/luxfi/turbine/cluster"
	"github.com/luxfi/turbine/config"
	"github.com/luxfi/turbine/core"
	"github.com/luxfi/turbine/shred"
)

var (
	errRecvTimeout = errors.New("receive timed out")
	errQueueClosed = errors.New("input queue closed")
)

// Retransmitter runs one worker per UDP socket, all pulling from the shared
// input queue. Closing the queue is the shutdown signal; there is no forced
// cancellation.
type Retransmitter struct {
	params     config.Parameters
	log        log.Logger
	sockets    []*net.UDPConn
	provider   core.SnapshotProvider
	leaders    core.LeaderSchedule
	membership cluster.Membership
	queue      <-chan []*shred.Shred
	maxSlots   *core.MaxSlots
	notifier   core.Notifier // nil disables slot-start observations

	filter      *Filter
	firstShreds *FirstShredTracker
	nodesCache  *cluster.NodesCache
	stats       *stats

	wg sync.WaitGroup
}

// Start validates the parameters and spawns one worker per socket.
func Start(
	params config.Parameters,
	logger log.Logger,
	sockets []*net.UDPConn,
	provider core.SnapshotProvider,
	leaders core.LeaderSchedule,
	membership cluster.Membership,
	queue <-chan []*shred.Shred,
	maxSlots *core.MaxSlots,
	notifier core.Notifier,
	reg prometheus.Registerer,
) (*Retransmitter, error) {
	if err := params.Valid(); err != nil {
		return nil, err
	}
	stats, err := newStats(reg)
	if err != nil {
		return nil, err
	}

	r := &Retransmitter{
		params:      params,
		log:         logger,
		sockets:     sockets,
		provider:    provider,
		leaders:     leaders,
		membership:  membership,
		queue:       queue,
		maxSlots:    maxSlots,
		notifier:    notifier,
		filter:      NewFilter(params.DedupFilterSize, params.MaxDuplicateCount),
		firstShreds: NewFirstShredTracker(params.FirstShredGCThreshold),
		nodesCache:  cluster.NewNodesCache(params.ClusterNodesCacheCap, params.ClusterNodesCacheTTL),
		stats:       stats,
	}
	r.wg.Add(len(sockets))
	for i := range sockets {
		go r.run(i)
	}
	logger.Info("retransmitter started",
		zap.Int("numWorkers", len(sockets)),
	)
	return r, nil
}

// Join blocks until every worker has exited.
func (r *Retransmitter) Join() {
	r.wg.Wait()
}

func (r *Retransmitter) run(workerID int) {
	defer r.wg.Done()

	r.log.Debug("retransmit worker started",
		zap.Int("worker", workerID),
	)
	for {
		err := r.retransmit(workerID, r.sockets[workerID])
		switch {
		case err == nil || errors.Is(err, errRecvTimeout):
		case errors.Is(err, errQueueClosed):
			r.log.Debug("retransmit worker exiting",
				zap.Int("worker", workerID),
			)
			return
		default:
			r.stats.iterErrorsCount.Inc()
			r.log.Warn("retransmit iteration failed",
				zap.Int("worker", workerID),
				zap.Error(err),
			)
		}
	}
}

// receiveBatch blocks for one batch, then drains the queue non-blocking
// until the accumulated batch reaches MaxBatchSize.
func (r *Retransmitter) receiveBatch() ([]*shred.Shred, error) {
	recvTimeout := time.NewTimer(r.params.RecvTimeout)
	defer recvTimeout.Stop()

	var shreds []*shred.Shred
	select {
	case batch, ok := <-r.queue:
		if !ok {
			return nil, errQueueClosed
		}
		shreds = batch
	case <-recvTimeout.C:
		return nil, errRecvTimeout
	}

	for len(shreds) < r.params.MaxBatchSize {
		select {
		case batch, ok := <-r.queue:
			if !ok {
				// Process what we have; the next blocking receive reports
				// the closed queue.
				return shreds, nil
			}
			shreds = append(shreds, batch...)
		default:
			return shreds, nil
		}
	}
	return shreds, nil
}

// retransmit is one worker iteration: pull a batch, filter each shred,
// compute its delivery tree, and fan its payload out.
func (r *Retransmitter) retransmit(workerID int, sock *net.UDPConn) error {
	shreds, err := r.receiveBatch()
	if err != nil {
		return err
	}
	start := time.Now()

	epochFetchStart := time.Now()
	working, root := r.provider.Read()
	epochFetch := time.Since(epochFetchStart)

	cacheUpdateStart := time.Now()
	r.filter.MaybeReset(r.params.HasherRekeyInterval)
	epochCacheUpdate := time.Since(cacheUpdateStart)

	var (
		localID      = r.membership.LocalID()
		addrSpace    = r.membership.AddrSpace()
		numSkipped   int
		maxSlot      uint64
		computePeers time.Duration
		sendTime     time.Duration
	)
	for _, s := range shreds {
		if r.filter.ShouldSkipRetransmit(s) {
			numSkipped++
			continue
		}
		slot := s.Slot()
		if slot > maxSlot {
			maxSlot = slot
		}

		if r.notifier != nil && r.firstShreds.CheckFirstShredReceived(slot, root) {
			r.notifier.NotifySlotUpdate(core.SlotUpdate{
				Kind:        core.FirstShredReceived,
				Slot:        slot,
				TimestampMS: time.Now().UnixMilli(),
			})
		}

		computeStart := time.Now()
		// Shreds are signature-verified upstream, and an unknown leader
		// fails that check; a miss here means the schedule view is behind,
		// so the shred is dropped rather than routed on a wrong tree.
		leader, ok := r.leaders.LeaderAt(slot, working)
		if !ok {
			computePeers += time.Since(computeStart)
			continue
		}
		nodes := r.nodesCache.ForSlot(slot, root, working, r.membership)
		seed := s.Seed(leader, root)
		neighbors, children := nodes.RetransmitPeers(seed, r.params.Fanout, leader)
		anchor := len(neighbors) > 0 && neighbors[0].ID == localID
		computePeers += time.Since(computeStart)

		// The anchor is the only node that leaves the neighborhood: it
		// feeds its neighbors' forward sockets and its children's primary
		// sockets. Non-anchors stay in their subtree and use forward
		// sockets only.
		sendStart := time.Now()
		if anchor {
			r.sendTo(sock, neighbors[1:], s.Payload(), true, localID, addrSpace)
		}
		r.sendTo(sock, children, s.Payload(), !anchor, localID, addrSpace)
		sendTime += time.Since(sendStart)
	}
	r.maxSlots.UpdateRetransmit(maxSlot)
	total := time.Since(start)

	r.log.Debug("retransmitted batch",
		zap.Int("worker", workerID),
		zap.Int("numShreds", len(shreds)),
		zap.Int("numShredsSkipped", numSkipped),
		zap.Duration("elapsed", total),
		zap.Duration("sendTime", sendTime),
	)

	numPeers := r.nodesCache.ForSlot(root.Slot(), root, working, r.membership).NumPeers()
	r.stats.update(r.log, batchMeasurements{
		numShreds:        len(shreds),
		numShredsSkipped: numSkipped,
		totalTime:        total,
		epochFetch:       epochFetch,
		epochCacheUpdate: epochCacheUpdate,
		computePeers:     computePeers,
		retransmitTime:   sendTime,
	}, numPeers, r.params.StatsFlushInterval)
	return nil
}

// sendTo writes payload to each peer, to the forward endpoint when forward
// is set and the primary endpoint otherwise. The local node and peers
// outside the permitted address space are skipped; send failures are
// counted and do not abort the batch.
func (r *Retransmitter) sendTo(
	sock *net.UDPConn,
	peers []cluster.Node,
	payload []byte,
	forward bool,
	localID ids.NodeID,
	addrSpace cluster.AddrSpace,
) {
	for _, peer := range peers {
		if peer.ID == localID {
			continue
		}
		addr := peer.TVU
		if forward {
			addr = peer.TVUForward
		}
		if !addrSpace.Check(addr) {
			continue
		}
		if _, err := sock.WriteToUDPAddrPort(payload, addr); err != nil {
			r.stats.sendErrorsCount.Inc()
			r.log.Verbo("send failed",
				zap.Stringer("peer", peer.ID),
				zap.Error(err),
			)
		}
	}
}
