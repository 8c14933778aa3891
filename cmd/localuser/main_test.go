// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/localuser/lib/localuser"
)

func TestResolveBothFamilies(t *testing.T) {
	var out strings.Builder
	if err := runResolve([]string{"--uid", "0", "localuser-1024"}, &out); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"localuser-1024:",
		"ipv4",
		"127.160.4.0",
		"ipv6",
		"::ffff:127.160.4.0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestResolveCollapsesOwnUID(t *testing.T) {
	var out strings.Builder
	if err := runResolve([]string{"--uid", "1024", "--family", "ipv4", "localuser-1024"}, &out); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// The round-trip check reverses the address as uid 1024, so the
	// explicit-UID spelling collapses to the bare hostname.
	got := out.String()
	if !strings.Contains(got, "127.160.4.0") {
		t.Errorf("output missing address:\n%s", got)
	}
	if !strings.Contains(got, " localuser\n") {
		t.Errorf("round-trip name did not collapse:\n%s", got)
	}
}

func TestResolveSingleFamily(t *testing.T) {
	var out strings.Builder
	if err := runResolve([]string{"--uid", "0", "--family", "ipv6", "localuser---5"}, &out); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "::ffff:127.176.0.5") {
		t.Errorf("output missing IPv6 address:\n%s", got)
	}
	if strings.Contains(got, "ipv4") {
		t.Errorf("unrequested ipv4 line present:\n%s", got)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no names", []string{"--uid", "0"}, nil},
		{"foreign name", []string{"--uid", "0", "example.com"}, localuser.ErrNotFound},
		{"bad family", []string{"--uid", "0", "--family", "decnet", "localuser"}, localuser.ErrUnsupportedFamily},
		{"uid with socket", []string{"--uid", "0", "--socket", "/tmp/x.sock", "localuser"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			err := runResolve(tt.args, &out)
			if err == nil {
				t.Fatal("resolve succeeded")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReverseAddresses(t *testing.T) {
	var out strings.Builder
	args := []string{"--uid", "9999", "127.176.0.5", "127.192.40.3", "::ffff:127.160.4.0"}
	if err := runReverse(args, &out); err != nil {
		t.Fatalf("reverse: %v", err)
	}

	got := out.String()
	for _, want := range []string{"localuser---5", "localuser-3-5", "localuser-1024"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestReverseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no addresses", []string{}, nil},
		{"unparseable address", []string{"not-an-address"}, nil},
		{"foreign address", []string{"8.8.8.8"}, localuser.ErrNotFound},
		{"reserved bits", []string{"127.128.0.1"}, localuser.ErrInvalid},
		{"family length mismatch", []string{"--family", "ipv6", "127.160.4.0"}, localuser.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			err := runReverse(tt.args, &out)
			if err == nil {
				t.Fatal("reverse succeeded")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
