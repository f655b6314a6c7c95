// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package shred holds the wire record retransmitted between validators: one
// erasure-coded fragment of a block. The payload is opaque to this layer and
// is forwarded byte for byte.
package shred

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/luxfi/ids"

	"github.com/luxfi/turbine/core"
)

// Type distinguishes data fragments from parity fragments.
type Type uint8

const (
	Data Type = iota
	Coding
)

func (t Type) String() string {
	switch t {
	case Data:
		return "data"
	case Coding:
		return "coding"
	default:
		return "unknown"
	}
}

// Shred is one fragment of a block, addressed by (slot, index, type).
type Shred struct {
	slot    uint64
	index   uint32
	typ     Type
	payload []byte
}

// New builds a shred. The payload is retained, not copied.
func New(slot uint64, index uint32, typ Type, payload []byte) *Shred {
	return &Shred{
		slot:    slot,
		index:   index,
		typ:     typ,
		payload: payload,
	}
}

func (s *Shred) Slot() uint64 {
	return s.slot
}

func (s *Shred) Index() uint32 {
	return s.index
}

func (s *Shred) Type() Type {
	return s.typ
}

// Payload returns the wire bytes forwarded to peers.
func (s *Shred) Payload() []byte {
	return s.payload
}

// Seed derives the digest that seeds this shred's delivery tree. Every node
// must compute the identical digest for the overlay to agree, so only
// protocol-fixed fields participate: slot, index, type and leader. The root
// snapshot is accepted but does not enter the digest.
func (s *Shred) Seed(leader ids.NodeID, root core.Snapshot) [32]byte {
	var buf [13]byte
	binary.LittleEndian.PutUint64(buf[0:8], s.slot)
	binary.LittleEndian.PutUint32(buf[8:12], s.index)
	buf[12] = byte(s.typ)

	h := sha256.New()
	h.Write(buf[:])
	h.Write(leader[:])

	var seed [32]byte
	h.Sum(seed[:0])
	return seed
}
