// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package localuser

import (
	"fmt"
	"strings"
)

// DecodeName parses a localuser name into an [Identity]. currentUID
// substitutes for the UID wherever the name leaves it implicit.
//
// The decision runs on the characters immediately after the literal
// "localuser": end of string means the current UID with no APPID; a
// single separator introduces an explicit UID (optionally followed by
// a separator and an APPID); a doubled separator keeps the current
// UID and requires an APPID; a tripled separator drops the UID and
// requires an APPID.
//
// A name that is not claimed by the family at all — wrong prefix, or
// a character other than the separator right after "localuser" —
// fails with [ErrNotFound] so that other resolvers may try it. A name
// the family claims but cannot parse fails with [ErrInvalid], and a
// parsed identifier that does not fit its field fails with
// [ErrOutOfRange].
func DecodeName(name string, currentUID uint32) (Identity, error) {
	rest, found := strings.CutPrefix(name, hostname)
	if !found {
		return Identity{}, fmt.Errorf("name %q: %w", name, ErrNotFound)
	}

	if rest == "" {
		return validated(Identity{HasUID: true, UID: currentUID})
	}
	if rest[0] != separator {
		return Identity{}, fmt.Errorf("name %q: %w", name, ErrNotFound)
	}
	rest = rest[1:]

	if rest == "" {
		return Identity{}, fmt.Errorf("name %q: dangling separator: %w", name, ErrInvalid)
	}

	if rest[0] != separator {
		// "localuser-UID" or "localuser-UID-APPID".
		uidText, appidText, hasAppID := strings.Cut(rest, string(separator))
		uid, err := parseID(uidText)
		if err != nil {
			return Identity{}, fmt.Errorf("name %q: UID: %w", name, err)
		}
		id := Identity{HasUID: true, UID: uid}
		if hasAppID {
			appid, err := parseID(appidText)
			if err != nil {
				return Identity{}, fmt.Errorf("name %q: APPID: %w", name, err)
			}
			id.HasAppID, id.AppID = true, appid
		}
		return validated(id)
	}
	rest = rest[1:]

	if rest == "" {
		return Identity{}, fmt.Errorf("name %q: APPID marker without digits: %w", name, ErrInvalid)
	}

	if rest[0] != separator {
		// "localuser--APPID": implicit current UID.
		appid, err := parseID(rest)
		if err != nil {
			return Identity{}, fmt.Errorf("name %q: APPID: %w", name, err)
		}
		return validated(Identity{HasUID: true, UID: currentUID, HasAppID: true, AppID: appid})
	}
	rest = rest[1:]

	// "localuser---APPID": no UID at all.
	appid, err := parseID(rest)
	if err != nil {
		return Identity{}, fmt.Errorf("name %q: APPID: %w", name, err)
	}
	return validated(Identity{HasAppID: true, AppID: appid})
}

// validated checks the identity against the bit budget of its
// sub-format by packing it once, so that DecodeName never returns an
// identity that cannot be addressed.
func validated(id Identity) (Identity, error) {
	if _, err := id.Uint32(); err != nil {
		return Identity{}, err
	}
	return id, nil
}
