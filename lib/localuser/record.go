// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package localuser

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Record framing. Lookup clients that feed C-style host entries (a
// NUL-terminated official name plus an address list) receive a single
// flat buffer laid out as:
//
//	[0:8)            offset of the first address entry (always 16)
//	[8:16)           zero: terminator of the address list
//	[16:16+alen)     address bytes (4 or 16, per family)
//	[16+alen:...)    canonical name, NUL-terminated
//
// Offsets are big-endian uint64 values relative to the start of the
// buffer; they stand in for the pointer slots of a hostent address
// list. The layout is fixed so the required size is computable before
// rendering, letting callers size buffers without trial and error.

// recordHeaderSize is the two 8-byte address-list slots at the front
// of every record.
const recordHeaderSize = 16

// recordAddrOffset is where the address bytes start: right after the
// header.
const recordAddrOffset = recordHeaderSize

// RecordSize returns the buffer size FillRecord needs for a record
// carrying the given canonical name in the given family.
func RecordSize(name string, family Family) (int, error) {
	addrLen := family.AddrLen()
	if addrLen == 0 {
		return 0, fmt.Errorf("family %s: %w", family, ErrUnsupportedFamily)
	}
	return recordHeaderSize + addrLen + len(name) + 1, nil
}

// FillRecord renders the identity's address and canonical name into
// buf using the record framing above, and returns the number of bytes
// written. currentUID feeds the canonical-name synthesis.
//
// The family must be IPv4 or IPv6; anything else fails with
// [ErrUnsupportedFamily]. A buffer smaller than RecordSize fails with
// [ErrBufferTooSmall] and may be retried with a larger one; nothing
// is written in that case.
func FillRecord(buf []byte, id Identity, family Family, currentUID uint32) (int, error) {
	addr, err := id.AddrBytes(family)
	if err != nil {
		return 0, err
	}
	name := id.CanonicalName(currentUID)

	size := recordHeaderSize + len(addr) + len(name) + 1
	if len(buf) < size {
		return 0, fmt.Errorf("record needs %d bytes, buffer has %d: %w", size, len(buf), ErrBufferTooSmall)
	}

	binary.BigEndian.PutUint64(buf[0:8], recordAddrOffset)
	binary.BigEndian.PutUint64(buf[8:16], 0)
	copy(buf[recordAddrOffset:], addr)
	nameOffset := recordAddrOffset + len(addr)
	copy(buf[nameOffset:], name)
	buf[size-1] = 0

	return size, nil
}

// ParseRecord reads back a record rendered by FillRecord, returning
// the name and the address bytes (a view into buf, not a copy). The
// address length is not stored in the record, but the two candidates
// cannot collide: an IPv4 entry starts with 0x7f while an IPv6 entry
// starts with ten zero bytes, so only one of the two lengths yields a
// decodable localuser address.
func ParseRecord(buf []byte) (name string, addr []byte, err error) {
	if len(buf) < recordHeaderSize {
		return "", nil, fmt.Errorf("record shorter than its %d-byte header: %w", recordHeaderSize, ErrInvalid)
	}
	offset := binary.BigEndian.Uint64(buf[0:8])
	if offset != recordAddrOffset || binary.BigEndian.Uint64(buf[8:16]) != 0 {
		return "", nil, fmt.Errorf("record header is malformed: %w", ErrInvalid)
	}

	rest := buf[recordAddrOffset:]
	for _, addrLen := range []int{IPv4Len, IPv6Len} {
		if len(rest) <= addrLen {
			continue
		}
		nul := bytes.IndexByte(rest[addrLen:], 0)
		if nul < 0 || nul > MaxNameLength {
			continue
		}
		if _, err := DecodeAddr(rest[:addrLen]); err == nil {
			return string(rest[addrLen : addrLen+nul]), rest[:addrLen], nil
		}
	}
	return "", nil, fmt.Errorf("record carries no localuser address: %w", ErrInvalid)
}
