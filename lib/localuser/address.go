// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package localuser

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net/netip"
)

// Family selects the wire form of an address. The codec serves IPv4
// and IPv4-mapped IPv6 only; FamilyUnspec exists for callers that
// default the family from context (IPv4 for forward lookups, the
// buffer length for reverse lookups) before reaching the codec.
type Family int

const (
	FamilyUnspec Family = iota
	FamilyIPv4
	FamilyIPv6
)

// Address lengths in bytes.
const (
	IPv4Len = 4
	IPv6Len = 16
)

// v4MappedPrefix is the 12-byte prefix of an IPv4-mapped IPv6 address
// (::ffff:0:0/96): ten zero bytes, then two 0xff bytes.
var v4MappedPrefix = [12]byte{10: 0xff, 11: 0xff}

// AddrLen returns the wire length of the family's addresses, or 0 for
// FamilyUnspec.
func (f Family) AddrLen() int {
	switch f {
	case FamilyIPv4:
		return IPv4Len
	case FamilyIPv6:
		return IPv6Len
	}
	return 0
}

func (f Family) String() string {
	switch f {
	case FamilyUnspec:
		return "unspec"
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// ParseFamily parses the wire/CLI spelling of a family. The empty
// string means FamilyUnspec.
func ParseFamily(text string) (Family, error) {
	switch text {
	case "", "unspec":
		return FamilyUnspec, nil
	case "ipv4", "inet":
		return FamilyIPv4, nil
	case "ipv6", "inet6":
		return FamilyIPv6, nil
	}
	return FamilyUnspec, fmt.Errorf("family %q: %w", text, ErrUnsupportedFamily)
}

// DecodeUint32 decodes a host-order IPv4 address value into an
// [Identity]. An address outside 127.128.0.0/9 fails with
// [ErrNotFound]; an address inside it whose discriminator matches no
// defined sub-format is reserved and fails with [ErrInvalid].
func DecodeUint32(addr uint32) (Identity, error) {
	if addr&prefixMask != prefixValue {
		return Identity{}, fmt.Errorf("address %s outside 127.128.0.0/9: %w", formatUint32(addr), ErrNotFound)
	}

	for _, format := range subFormats {
		if !format.matches(addr) {
			continue
		}
		id := Identity{HasUID: format.hasUID, HasAppID: format.hasAppID}
		if format.hasUID {
			id.UID = addr & format.maxUID()
		}
		if format.hasAppID {
			id.AppID = (addr >> format.appidShift) & format.maxAppID()
		}
		return id, nil
	}

	return Identity{}, fmt.Errorf("address %s has a reserved discriminator: %w", formatUint32(addr), ErrInvalid)
}

// DecodeAddr decodes a 4-byte IPv4 address or a 16-byte IPv4-mapped
// IPv6 address into an [Identity]. A 16-byte buffer without the
// ::ffff:0:0/96 prefix is not a localuser address even if its last
// four bytes would decode; it fails with [ErrNotFound], as does any
// other buffer length.
func DecodeAddr(addr []byte) (Identity, error) {
	switch len(addr) {
	case IPv4Len:
		return DecodeUint32(binary.BigEndian.Uint32(addr))
	case IPv6Len:
		if !bytes.Equal(addr[:12], v4MappedPrefix[:]) {
			return Identity{}, fmt.Errorf("IPv6 address is not IPv4-mapped: %w", ErrNotFound)
		}
		return DecodeUint32(binary.BigEndian.Uint32(addr[12:]))
	}
	return Identity{}, fmt.Errorf("address length %d: %w", len(addr), ErrNotFound)
}

// AddrBytes packs the identity and renders it in the requested
// family: 4 big-endian bytes for IPv4, or the standard IPv4-mapped
// 16-byte form for IPv6. The family must be explicit; resolve
// defaulting before calling.
func (id Identity) AddrBytes(family Family) ([]byte, error) {
	packed, err := id.Uint32()
	if err != nil {
		return nil, err
	}

	switch family {
	case FamilyIPv4:
		addr := make([]byte, IPv4Len)
		binary.BigEndian.PutUint32(addr, packed)
		return addr, nil
	case FamilyIPv6:
		addr := make([]byte, IPv6Len)
		copy(addr, v4MappedPrefix[:])
		binary.BigEndian.PutUint32(addr[12:], packed)
		return addr, nil
	}
	return nil, fmt.Errorf("family %s: %w", family, ErrUnsupportedFamily)
}

// Addr is AddrBytes as a netip.Addr, for callers that print or
// compare addresses rather than move them over a wire.
func (id Identity) Addr(family Family) (netip.Addr, error) {
	raw, err := id.AddrBytes(family)
	if err != nil {
		return netip.Addr{}, err
	}
	addr, ok := netip.AddrFromSlice(raw)
	if !ok {
		return netip.Addr{}, fmt.Errorf("address length %d: %w", len(raw), ErrInvalid)
	}
	return addr, nil
}

// formatUint32 renders a host-order address value in dotted-quad form
// for error messages.
func formatUint32(addr uint32) netip.Addr {
	var raw [IPv4Len]byte
	binary.BigEndian.PutUint32(raw[:], addr)
	return netip.AddrFrom4(raw)
}
