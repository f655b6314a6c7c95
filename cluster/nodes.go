// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cluster derives per-shred delivery trees from the gossiped cluster
// view. The tree is a pure function of the shred seed, the fanout, the slot
// leader, and the epoch's stake-ranked membership; every node in the cluster
// computes the same tree or the overlay splits.
package cluster

import (
	"bytes"
	"net/netip"
	"sort"

	"github.com/luxfi/ids"

	"github.com/luxfi/turbine/utils/sampler"
	"github.com/luxfi/turbine/utils/set"
)

// Node is one cluster peer as seen by gossip. TVU is the primary shred
// ingest endpoint; TVUForward is the secondary endpoint reserved for shreds
// received from a node higher in the tree.
type Node struct {
	ID         ids.NodeID
	TVU        netip.AddrPort
	TVUForward netip.AddrPort
	Stake      uint64
}

// Membership is the gossip-side view of the cluster. Nodes must include the
// local node.
type Membership interface {
	Nodes() []Node
	LocalID() ids.NodeID
	AddrSpace() AddrSpace
}

// Nodes is one epoch's peer table: reachable cluster nodes stably ranked by
// stake, highest first, ties broken by id. The ranking fixes the index space
// the per-shred shuffle permutes.
type Nodes struct {
	localID ids.NodeID
	nodes   []Node
	weights []uint64
}

// NewNodes builds the peer table from the current membership snapshot.
// Unreachable peers are dropped; the local node is always kept so it can
// locate itself in the shuffled list.
func NewNodes(membership Membership) *Nodes {
	localID := membership.LocalID()
	addrSpace := membership.AddrSpace()

	seen := set.NewSet[ids.NodeID](16)
	nodes := make([]Node, 0, 16)
	for _, node := range membership.Nodes() {
		if seen.Contains(node.ID) {
			continue
		}
		if node.ID != localID && !addrSpace.Check(node.TVU) {
			continue
		}
		seen.Add(node.ID)
		nodes = append(nodes, node)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Stake != nodes[j].Stake {
			return nodes[i].Stake > nodes[j].Stake
		}
		return bytes.Compare(nodes[i].ID[:], nodes[j].ID[:]) < 0
	})

	weights := make([]uint64, len(nodes))
	for i, node := range nodes {
		// Zero-stake nodes stay in the tree as leaves; weight 1 keeps them
		// sampleable.
		weights[i] = node.Stake
		if weights[i] == 0 {
			weights[i] = 1
		}
	}

	return &Nodes{
		localID: localID,
		nodes:   nodes,
		weights: weights,
	}
}

// NumPeers returns the number of known peers, excluding the local node.
func (n *Nodes) NumPeers() int {
	if len(n.nodes) == 0 {
		return 0
	}
	return len(n.nodes) - 1
}

// RetransmitPeers computes this node's neighbors and children in the
// delivery tree seeded by seed. The slot leader is excluded: it produced the
// shred and does not forward it. If the local node is missing from the
// membership snapshot, both results are empty.
//
// Layout of the shuffled list: position p sits in the neighborhood
// [p-p%fanout, p-p%fanout+fanout). Its children are the nodes one level
// down that occupy p's offset within each of the neighborhood's child
// blocks.
func (n *Nodes) RetransmitPeers(seed [32]byte, fanout int, leader ids.NodeID) ([]Node, []Node) {
	candidates := make([]int, 0, len(n.nodes))
	weights := make([]uint64, 0, len(n.nodes))
	for i, node := range n.nodes {
		if node.ID == leader {
			continue
		}
		candidates = append(candidates, i)
		weights = append(weights, n.weights[i])
	}

	shuffle, err := sampler.NewWeightedShuffle(weights)
	if err != nil {
		return nil, nil
	}
	src, err := sampler.NewSeededSource(seed)
	if err != nil {
		return nil, nil
	}
	order := shuffle.Shuffle(src)

	position := -1
	for p, ix := range order {
		if n.nodes[candidates[ix]].ID == n.localID {
			position = p
			break
		}
	}
	if position < 0 {
		return nil, nil
	}

	nodeAt := func(p int) Node {
		return n.nodes[candidates[order[p]]]
	}

	offset := position % fanout
	anchor := position - offset

	neighbors := make([]Node, 0, fanout)
	for p := anchor; p < anchor+fanout && p < len(order); p++ {
		neighbors = append(neighbors, nodeAt(p))
	}

	children := make([]Node, 0, fanout)
	for k, p := 0, (anchor+1)*fanout+offset; k < fanout && p < len(order); k, p = k+1, p+fanout {
		children = append(children, nodeAt(p))
	}
	return neighbors, children
}
