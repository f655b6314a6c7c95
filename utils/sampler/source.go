// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// Source is a source of randomness.
type Source interface {
	Uint64() uint64
}

// seededSource draws uint64 values from a chacha20 keystream. The same seed
// always yields the same sequence, on every platform; the retransmit overlay
// depends on that.
type seededSource struct {
	cipher  *chacha20.Cipher
	scratch [8]byte
}

// NewSeededSource returns a deterministic Source keyed by seed.
func NewSeededSource(seed [32]byte) (Source, error) {
	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		return nil, err
	}
	return &seededSource{cipher: cipher}, nil
}

func (s *seededSource) Uint64() uint64 {
	for i := range s.scratch {
		s.scratch[i] = 0
	}
	s.cipher.XORKeyStream(s.scratch[:], s.scratch[:])
	return binary.LittleEndian.Uint64(s.scratch[:])
}

// Uint64n returns an unbiased draw in [0, n) from src. n must be positive.
func Uint64n(src Source, n uint64) uint64 {
	// Rejection sampling keeps the draw unbiased; the retry probability is
	// at most 1/2 per round.
	limit := -n % n // (2^64 - n) % n == 2^64 mod n
	for {
		v := src.Uint64()
		if v >= limit {
			return v % n
		}
	}
}
