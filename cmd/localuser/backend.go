// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/bureau-foundation/localuser/lib/localuser"
	"github.com/bureau-foundation/localuser/lib/service"
)

// lookupBackend abstracts over the in-process codec and the lookup
// daemon so the subcommands print identically from either source.
type lookupBackend interface {
	resolve(ctx context.Context, name string, family localuser.Family) (localuser.Result, error)
	reverse(ctx context.Context, addr []byte, family localuser.Family) (localuser.Result, error)
}

// localBackend runs lookups in-process.
type localBackend struct {
	resolver *localuser.Resolver
}

func (b *localBackend) resolve(ctx context.Context, name string, family localuser.Family) (localuser.Result, error) {
	return b.resolver.Resolve(name, family)
}

func (b *localBackend) reverse(ctx context.Context, addr []byte, family localuser.Family) (localuser.Result, error) {
	return b.resolver.Reverse(addr, family)
}

// remoteBackend queries a lookup daemon. The daemon reads our UID from
// the socket's peer credentials, so the results match the in-process
// ones unless the daemon is configured with a UID override.
type remoteBackend struct {
	client *service.Client
}

func (b *remoteBackend) resolve(ctx context.Context, name string, family localuser.Family) (localuser.Result, error) {
	var result localuser.Result
	err := b.client.Call(ctx, "resolve", map[string]any{
		"name":   name,
		"family": family.String(),
	}, &result)
	return result, err
}

func (b *remoteBackend) reverse(ctx context.Context, addr []byte, family localuser.Family) (localuser.Result, error) {
	var result localuser.Result
	err := b.client.Call(ctx, "reverse", map[string]any{
		"address": addr,
		"family":  family.String(),
	}, &result)
	return result, err
}
