// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"
	"math"
)

var ErrOverflow = errors.New("overflow")

// Add64 returns a + b with overflow detection.
func Add64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Mul64 returns a * b with overflow detection.
func Mul64(a, b uint64) (uint64, error) {
	if b != 0 && a > math.MaxUint64/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// Max64 returns the maximum of two uint64 values.
func Max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
