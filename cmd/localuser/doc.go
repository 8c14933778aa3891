// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command localuser is the console client for the localuser codec. It
// resolves virtual hostnames to their packed loopback addresses and
// back, either in-process or against a running localuser-service via
// --socket.
package main
