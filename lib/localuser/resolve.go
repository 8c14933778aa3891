// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package localuser

import (
	"fmt"
	"os"
)

// Result is the outcome of a successful lookup: the canonical name
// and the wire address, both derived from the same [Identity]. The
// cbor tags are the wire form the lookup service returns.
type Result struct {
	Name   string `cbor:"name"`
	Addr   []byte `cbor:"address"`
	Family Family `cbor:"family"`
}

// Resolver binds a current-UID source to the codec's two lookup
// operations. Each lookup is a pure, independent transformation; the
// UID source is read once per call and is the only environmental
// input, so a Resolver is safe for concurrent use as long as its UID
// source is.
type Resolver struct {
	currentUID func() uint32
}

// NewResolver creates a resolver using currentUID as the
// current-process UID source. Passing nil selects the real process
// UID (os.Getuid).
func NewResolver(currentUID func() uint32) *Resolver {
	if currentUID == nil {
		currentUID = func() uint32 { return uint32(os.Getuid()) }
	}
	return &Resolver{currentUID: currentUID}
}

// Resolve decodes a name and renders its address in the requested
// family. FamilyUnspec defaults to IPv4, matching the forward-lookup
// behavior of the host-entry interface this backs. The returned name
// is canonical; it differs from the input only when the input spelled
// out what the canonical form leaves implicit (for example an
// explicit current UID with no APPID collapses to plain "localuser").
func (r *Resolver) Resolve(name string, family Family) (Result, error) {
	if family == FamilyUnspec {
		family = FamilyIPv4
	}
	if family != FamilyIPv4 && family != FamilyIPv6 {
		return Result{}, fmt.Errorf("family %s: %w", family, ErrUnsupportedFamily)
	}

	uid := r.currentUID()
	id, err := DecodeName(name, uid)
	if err != nil {
		return Result{}, err
	}
	addr, err := id.AddrBytes(family)
	if err != nil {
		return Result{}, err
	}
	return Result{Name: id.CanonicalName(uid), Addr: addr, Family: family}, nil
}

// Reverse decodes an address buffer back to its canonical name.
// FamilyUnspec defaults from the buffer length. A family/length
// mismatch, like an address the codec does not own, fails with
// [ErrNotFound]: the address may belong to some other resolver.
func (r *Resolver) Reverse(addr []byte, family Family) (Result, error) {
	if family == FamilyUnspec {
		switch len(addr) {
		case IPv4Len:
			family = FamilyIPv4
		case IPv6Len:
			family = FamilyIPv6
		}
	}
	if family.AddrLen() != len(addr) {
		return Result{}, fmt.Errorf("family %s with %d address bytes: %w", family, len(addr), ErrNotFound)
	}

	id, err := DecodeAddr(addr)
	if err != nil {
		return Result{}, err
	}

	echo := make([]byte, len(addr))
	copy(echo, addr)
	return Result{Name: id.CanonicalName(r.currentUID()), Addr: echo, Family: family}, nil
}
