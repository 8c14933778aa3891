// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package localuser implements the bidirectional codec between the
// localuser family of virtual hostnames and loopback addresses in the
// 127.128.0.0/9 range that carry a user identifier (UID) and/or an
// application identifier (APPID) in their low bits.
//
// # Names
//
// Five name shapes exist. The current-process UID is implied wherever
// no UID is written out:
//
//	localuser            current UID, no APPID
//	localuser-1024       UID 1024, no APPID
//	localuser-1024-7     UID 1024, APPID 7
//	localuser--7         current UID, APPID 7
//	localuser---7        no UID, APPID 7
//
// # Addresses
//
// All addresses share the fixed 9-bit prefix 0111 1111 1 (the
// 127.128.0.0/9 network). The bits after the prefix select one of
// three mutually exclusive sub-formats:
//
//	0111 1111 11aa aaaa aaaa auuu uuuu uuuu   UID and APPID, 11 bits each
//	0111 1111 1011 aaaa aaaa aaaa aaaa aaaa   APPID only, 20 bits
//	0111 1111 1010 uuuu uuuu uuuu uuuu uuuu   UID only, 20 bits
//
// The remaining discriminator patterns (000 and 001 after the prefix)
// are reserved: decoding them fails with [ErrInvalid], they are never
// reinterpreted.
//
// IPv6 lacks a loopback range, so the IPv6 form of every address is
// the IPv4-mapped address ::ffff:127.x.y.z.
//
// # Identity
//
// [DecodeName] and [DecodeAddr] both produce an [Identity], the
// canonical in-memory form. [Identity.CanonicalName] and
// [Identity.AddrBytes] derive the unique minimal name and the wire
// address from it. Encoding and decoding are mutual inverses over the
// UID/APPID fields.
//
// The current-process UID is an environmental input, so every entry
// point that needs it takes it as an explicit parameter; the codec
// never reads process identity itself. [Resolver] binds a UID source
// once and exposes the resolve/reverse operations a lookup service
// needs.
package localuser
