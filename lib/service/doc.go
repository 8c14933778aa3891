// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package service implements the Unix-socket request/response
// protocol between the localuser lookup daemon and its clients.
//
// Each connection carries exactly one request-response cycle: the
// client writes one CBOR value, the server processes it and writes
// one CBOR response, and the connection closes. CBOR is
// self-delimiting, so no framing protocol is needed.
//
// The server reads the peer's credentials (SO_PEERCRED) from every
// connection and hands them to the action handler. This is how the
// lookup daemon learns the caller's UID: the "current user" of a
// lookup is whoever is asking, the same way the in-process resolver
// reads its own process identity.
//
// [SocketServer] serves registered actions; [Client] is the matching
// caller side.
package service
