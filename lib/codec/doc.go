// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec centralizes CBOR encoding configuration for the
// lookup protocol.
//
// All encoding goes through Core Deterministic Encoding (RFC 8949
// §4.2) so that the same logical request or response always produces
// identical bytes. Decoding accepts standard CBOR and ignores unknown
// fields, so older clients keep working when the protocol grows a
// field.
//
// Consumers use [Marshal], [Unmarshal], [NewEncoder], and
// [NewDecoder] instead of importing fxamacker/cbor directly; the
// encoder configuration lives here and nowhere else.
package codec
