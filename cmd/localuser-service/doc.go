// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command localuser-service is the lookup daemon for localuser virtual
// hostnames. It listens on a Unix socket and answers resolve (name to
// address) and reverse (address to name) requests over the CBOR
// request/response protocol.
//
// The "current user" of each lookup is the requesting process's UID,
// read from the connection's peer credentials, so every client sees
// plain "localuser" resolve to its own address. A uid setting in the
// configuration file pins all lookups to one UID instead.
package main
