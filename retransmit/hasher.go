// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package retransmit

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/luxfi/turbine/shred"
)

// PacketHasher computes a keyed 64-bit digest over a shred's wire bytes.
// Rotating the key bounds how long an adversary can aim precomputed
// collisions at the dedup filter, so Reset must be paired with a filter
// clear: digests from different keys never compare equal.
type PacketHasher struct {
	seed1 uint64
	seed2 uint64
}

// NewPacketHasher returns a hasher keyed with fresh random seeds.
func NewPacketHasher() *PacketHasher {
	h := &PacketHasher{}
	h.Reset()
	return h
}

// HashShred digests the shred's payload under the current key.
func (h *PacketHasher) HashShred(s *shred.Shred) uint64 {
	var key [16]byte
	binary.LittleEndian.PutUint64(key[0:8], h.seed1)
	binary.LittleEndian.PutUint64(key[8:16], h.seed2)

	d := xxhash.New()
	_, _ = d.Write(key[:])
	_, _ = d.Write(s.Payload())
	return d.Sum64()
}

// Reset replaces both seeds with fresh random values.
func (h *PacketHasher) Reset() {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	h.seed1 = binary.LittleEndian.Uint64(buf[0:8])
	h.seed2 = binary.LittleEndian.Uint64(buf[8:16])
}
