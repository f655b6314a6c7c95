// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import "time"

// Clock is a mockable clock
type Clock struct {
	time   time.Time
	mocked bool
}

// Now returns the current time
func (c *Clock) Now() time.Time {
	if c.mocked {
		return c.time
	}
	return time.Now()
}

// Set sets the clock time and enters mocked mode
func (c *Clock) Set(t time.Time) {
	c.time = t
	c.mocked = true
}

// Advance advances the mocked clock
func (c *Clock) Advance(d time.Duration) {
	c.time = c.time.Add(d)
}
