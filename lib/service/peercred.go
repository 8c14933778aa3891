// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// Peer identifies the process on the other end of a lookup
// connection, as reported by the kernel. The credentials are
// established at connect time and cannot be forged by the client.
type Peer struct {
	UID uint32
	GID uint32
	PID int32
}

// peerCredentials reads SO_PEERCRED from a Unix socket connection.
func peerCredentials(conn *net.UnixConn) (Peer, error) {
	rawConn, err := conn.SyscallConn()
	if err != nil {
		return Peer{}, fmt.Errorf("accessing raw connection: %w", err)
	}

	var (
		cred    *unix.Ucred
		credErr error
	)
	if err := rawConn.Control(func(fd uintptr) {
		cred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	}); err != nil {
		return Peer{}, fmt.Errorf("reading peer credentials: %w", err)
	}
	if credErr != nil {
		return Peer{}, fmt.Errorf("reading peer credentials: %w", credErr)
	}

	return Peer{UID: cred.Uid, GID: cred.Gid, PID: cred.Pid}, nil
}
