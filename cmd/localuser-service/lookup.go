// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/localuser/lib/codec"
	"github.com/bureau-foundation/localuser/lib/localuser"
	"github.com/bureau-foundation/localuser/lib/service"
	"github.com/bureau-foundation/localuser/lib/version"
)

// lookupService implements the daemon's socket actions. It is
// stateless between requests: each lookup reads the caller's UID from
// the connection's peer credentials (or the configured override) and
// runs the codec against it.
type lookupService struct {
	logger      *slog.Logger
	uidOverride *uint32
}

// register installs the service's actions on the socket server.
func (s *lookupService) register(server *service.SocketServer) {
	server.Handle("resolve", s.handleResolve)
	server.Handle("reverse", s.handleReverse)
	server.Handle("version", s.handleVersion)
}

// callerUID is the UID a lookup runs as: the configured override if
// set, otherwise the kernel-reported UID of the requesting process.
func (s *lookupService) callerUID(peer service.Peer) uint32 {
	if s.uidOverride != nil {
		return *s.uidOverride
	}
	return peer.UID
}

// lookupReply is the wire form of a successful lookup. Record is the
// flat host-entry framing of the same result, for clients that feed a
// fixed-capacity hostent buffer.
type lookupReply struct {
	Name    string           `cbor:"name"`
	Address []byte           `cbor:"address"`
	Family  localuser.Family `cbor:"family"`
	Record  []byte           `cbor:"record"`
}

func (s *lookupService) handleResolve(ctx context.Context, peer service.Peer, raw []byte) (any, error) {
	var request struct {
		Name   string `cbor:"name"`
		Family string `cbor:"family"`
	}
	if err := codec.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("decoding resolve request: %w", err)
	}
	if request.Name == "" {
		return nil, fmt.Errorf("missing required field: name")
	}
	family, err := localuser.ParseFamily(request.Family)
	if err != nil {
		return nil, err
	}

	uid := s.callerUID(peer)
	result, err := localuser.NewResolver(func() uint32 { return uid }).Resolve(request.Name, family)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("resolved name",
		"name", request.Name,
		"canonical", result.Name,
		"family", result.Family.String(),
		"uid", uid,
	)
	return s.reply(result, uid)
}

func (s *lookupService) handleReverse(ctx context.Context, peer service.Peer, raw []byte) (any, error) {
	var request struct {
		Address []byte `cbor:"address"`
		Family  string `cbor:"family"`
	}
	if err := codec.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("decoding reverse request: %w", err)
	}
	if len(request.Address) == 0 {
		return nil, fmt.Errorf("missing required field: address")
	}
	family, err := localuser.ParseFamily(request.Family)
	if err != nil {
		return nil, err
	}

	uid := s.callerUID(peer)
	result, err := localuser.NewResolver(func() uint32 { return uid }).Reverse(request.Address, family)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("reversed address",
		"name", result.Name,
		"family", result.Family.String(),
		"uid", uid,
	)
	return s.reply(result, uid)
}

func (s *lookupService) handleVersion(ctx context.Context, peer service.Peer, raw []byte) (any, error) {
	return map[string]string{"version": version.Info()}, nil
}

// reply renders a lookup result and its host-entry record framing.
func (s *lookupService) reply(result localuser.Result, uid uint32) (*lookupReply, error) {
	id, err := localuser.DecodeAddr(result.Addr)
	if err != nil {
		return nil, fmt.Errorf("internal: re-decoding resolved address: %w", err)
	}

	size, err := localuser.RecordSize(result.Name, result.Family)
	if err != nil {
		return nil, err
	}
	record := make([]byte, size)
	if _, err := localuser.FillRecord(record, id, result.Family, uid); err != nil {
		return nil, err
	}

	return &lookupReply{
		Name:    result.Name,
		Address: result.Addr,
		Family:  result.Family,
		Record:  record,
	}, nil
}
