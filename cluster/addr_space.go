// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cluster

import "net/netip"

// AddrSpace is the policy for which peer addresses may be sent to.
type AddrSpace uint8

const (
	// AnyAddrSpace permits every valid address. Test and local networks.
	AnyAddrSpace AddrSpace = iota

	// GlobalAddrSpace rejects addresses that cannot belong to a peer on the
	// public internet.
	GlobalAddrSpace
)

// Check reports whether addr may be sent to under this policy.
func (a AddrSpace) Check(addr netip.AddrPort) bool {
	if !addr.IsValid() || addr.Port() == 0 {
		return false
	}
	if a != GlobalAddrSpace {
		return true
	}
	ip := addr.Addr()
	return !ip.IsUnspecified() &&
		!ip.IsLoopback() &&
		!ip.IsLinkLocalUnicast() &&
		!ip.IsLinkLocalMulticast() &&
		!ip.IsPrivate()
}
