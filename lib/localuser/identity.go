// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package localuser

import (
	"errors"
	"fmt"
	"strconv"
)

// Identity is the decoded form of a localuser name or address: which
// identifiers are present and their values. It is constructed by
// [DecodeName] or [DecodeAddr] (or literally, by callers that already
// hold a UID/APPID pair) and never mutated afterwards; the packed
// address and the canonical name are derived from it on demand.
//
// Every identity that corresponds to a localuser address carries at
// least one identifier. The "current user, no application" case sets
// HasUID with the current-process UID, so the empty combination is
// unreachable from the decoders.
type Identity struct {
	// HasUID indicates a user identifier is present. UID is only
	// meaningful when it is set.
	HasUID bool
	UID    uint32

	// HasAppID indicates an application identifier is present. AppID
	// is only meaningful when it is set.
	HasAppID bool
	AppID    uint32
}

// Uint32 packs the identity into a host-order IPv4 address value.
//
// The bit budget depends on the shape: 11 bits per identifier when
// both are present, 20 bits for a lone identifier. A value that fits
// in 32 bits but not in the applicable field fails with
// [ErrOutOfRange]. An identity with neither identifier fails with
// [ErrInvalid]; no sub-format exists for it.
func (id Identity) Uint32() (uint32, error) {
	format, ok := formatFor(id.HasUID, id.HasAppID)
	if !ok {
		return 0, fmt.Errorf("identity carries neither a UID nor an APPID: %w", ErrInvalid)
	}

	if id.HasUID && id.UID > format.maxUID() {
		return 0, fmt.Errorf("UID %d exceeds the %d-bit field: %w", id.UID, format.uidBits, ErrOutOfRange)
	}
	if id.HasAppID && id.AppID > format.maxAppID() {
		return 0, fmt.Errorf("APPID %d exceeds the %d-bit field: %w", id.AppID, format.appidBits, ErrOutOfRange)
	}

	addr := format.value
	if id.HasAppID {
		addr |= id.AppID << format.appidShift
	}
	if id.HasUID {
		addr |= id.UID
	}
	return addr, nil
}

// CanonicalName renders the unique minimal name for the identity. The
// current-process UID is implied whenever possible: only a differing
// UID or the presence of an APPID adds characters.
//
//	{UID: currentUID}            → "localuser"
//	{UID: 1024}                  → "localuser-1024"
//	{UID: 1024, AppID: 7}        → "localuser-1024-7"
//	{UID: currentUID, AppID: 7}  → "localuser--7"
//	{AppID: 7}                   → "localuser---7"
//
// The result is at most [MaxNameLength] bytes.
func (id Identity) CanonicalName(currentUID uint32) string {
	name := make([]byte, 0, MaxNameLength)
	name = append(name, hostname...)

	switch {
	case !id.HasUID:
		// No UID at all: a doubled separator keeps the slot empty so
		// that the APPID below lands after three dashes.
		name = append(name, separator, separator)
	case id.UID != currentUID:
		name = append(name, separator)
		name = strconv.AppendUint(name, uint64(id.UID), 10)
	case id.HasAppID:
		// The current UID is implied, but the separator must still be
		// written so the APPID's own separator doubles it.
		name = append(name, separator)
	}

	if id.HasAppID {
		name = append(name, separator)
		name = strconv.AppendUint(name, uint64(id.AppID), 10)
	}
	return string(name)
}

// parseID parses an unsigned decimal identifier, mapping strconv's
// taxonomy onto the codec's: empty input and non-digit characters are
// [ErrInvalid], 32-bit overflow is [ErrOutOfRange]. Field-width
// validation happens later, when the identity is packed.
func parseID(text string) (uint32, error) {
	value, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("identifier %q overflows 32 bits: %w", text, ErrOutOfRange)
		}
		return 0, fmt.Errorf("identifier %q is not an unsigned decimal: %w", text, ErrInvalid)
	}
	return uint32(value), nil
}
