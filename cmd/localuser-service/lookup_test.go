// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/bureau-foundation/localuser/lib/codec"
	"github.com/bureau-foundation/localuser/lib/localuser"
	"github.com/bureau-foundation/localuser/lib/service"
)

func testService(uidOverride *uint32) *lookupService {
	return &lookupService{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		})),
		uidOverride: uidOverride,
	}
}

// call invokes a handler the way the socket server would: with the
// request marshaled as CBOR and the given peer credentials.
func call(t *testing.T, handler service.ActionFunc, peer service.Peer, request map[string]any) (any, error) {
	t.Helper()
	raw, err := codec.Marshal(request)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	return handler(context.Background(), peer, raw)
}

func TestResolveUsesPeerUID(t *testing.T) {
	s := testService(nil)
	peer := service.Peer{UID: 1000}

	result, err := call(t, s.handleResolve, peer, map[string]any{"name": "localuser"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	reply := result.(*lookupReply)

	if reply.Name != "localuser" {
		t.Errorf("name = %q", reply.Name)
	}
	if want := []byte{0x7f, 0xa0, 0x03, 0xe8}; !bytes.Equal(reply.Address, want) {
		t.Errorf("address = %x, want %x", reply.Address, want)
	}
	if reply.Family != localuser.FamilyIPv4 {
		t.Errorf("family = %v", reply.Family)
	}

	name, addr, err := localuser.ParseRecord(reply.Record)
	if err != nil {
		t.Fatalf("parsing record: %v", err)
	}
	if name != reply.Name || !bytes.Equal(addr, reply.Address) {
		t.Errorf("record carries %q/%x, reply carries %q/%x", name, addr, reply.Name, reply.Address)
	}
}

func TestResolveUIDOverride(t *testing.T) {
	override := uint32(42)
	s := testService(&override)

	// Peer UID is ignored when the override is configured.
	result, err := call(t, s.handleResolve, service.Peer{UID: 1000}, map[string]any{"name": "localuser"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	reply := result.(*lookupReply)
	if want := []byte{0x7f, 0xa0, 0x00, 0x2a}; !bytes.Equal(reply.Address, want) {
		t.Errorf("address = %x, want %x", reply.Address, want)
	}
}

func TestResolveIPv6(t *testing.T) {
	s := testService(nil)

	result, err := call(t, s.handleResolve, service.Peer{UID: 1000}, map[string]any{
		"name":   "localuser-3-5",
		"family": "ipv6",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	reply := result.(*lookupReply)

	want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 0x7f, 0xc0, 0x28, 0x03}
	if !bytes.Equal(reply.Address, want) {
		t.Errorf("address = %x, want %x", reply.Address, want)
	}
	if reply.Family != localuser.FamilyIPv6 {
		t.Errorf("family = %v", reply.Family)
	}
}

func TestResolveErrors(t *testing.T) {
	s := testService(nil)
	peer := service.Peer{UID: 1000}

	tests := []struct {
		name    string
		request map[string]any
		want    error
	}{
		{"missing name", map[string]any{}, nil},
		{"foreign name", map[string]any{"name": "example.com"}, localuser.ErrNotFound},
		{"malformed tail", map[string]any{"name": "localuser--"}, localuser.ErrInvalid},
		{"uid overflow", map[string]any{"name": "localuser-4294967296"}, localuser.ErrOutOfRange},
		{"bad family", map[string]any{"name": "localuser", "family": "decnet"}, localuser.ErrUnsupportedFamily},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(t, s.handleResolve, peer, tt.request)
			if err == nil {
				t.Fatal("resolve succeeded")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	s := testService(nil)

	result, err := call(t, s.handleReverse, service.Peer{UID: 9999}, map[string]any{
		"address": []byte{0x7f, 0xc0, 0x28, 0x03},
	})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	reply := result.(*lookupReply)
	if reply.Name != "localuser-3-5" {
		t.Errorf("name = %q", reply.Name)
	}
	if reply.Family != localuser.FamilyIPv4 {
		t.Errorf("family = %v", reply.Family)
	}
}

func TestReverseCollapsesCallerUID(t *testing.T) {
	s := testService(nil)

	// uid 1000 with no APPID, asked for by uid 1000: canonical form is
	// the bare hostname.
	result, err := call(t, s.handleReverse, service.Peer{UID: 1000}, map[string]any{
		"address": []byte{0x7f, 0xa0, 0x03, 0xe8},
	})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if reply := result.(*lookupReply); reply.Name != "localuser" {
		t.Errorf("name = %q", reply.Name)
	}
}

func TestReverseErrors(t *testing.T) {
	s := testService(nil)
	peer := service.Peer{UID: 1000}

	tests := []struct {
		name    string
		request map[string]any
		want    error
	}{
		{"missing address", map[string]any{}, nil},
		{"foreign address", map[string]any{"address": []byte{8, 8, 8, 8}}, localuser.ErrNotFound},
		{"reserved bits", map[string]any{"address": []byte{0x7f, 0x80, 0x00, 0x01}}, localuser.ErrInvalid},
		{"family length mismatch", map[string]any{
			"address": []byte{0x7f, 0xa0, 0x03, 0xe8},
			"family":  "ipv6",
		}, localuser.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(t, s.handleReverse, peer, tt.request)
			if err == nil {
				t.Fatal("reverse succeeded")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVersionAction(t *testing.T) {
	s := testService(nil)

	result, err := call(t, s.handleVersion, service.Peer{}, map[string]any{})
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	info := result.(map[string]string)
	if info["version"] == "" {
		t.Error("version is empty")
	}
}
