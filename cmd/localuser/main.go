// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"net/netip"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/localuser/lib/localuser"
	"github.com/bureau-foundation/localuser/lib/service"
	"github.com/bureau-foundation/localuser/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	switch os.Args[1] {
	case "resolve":
		return runResolve(os.Args[2:], os.Stdout)
	case "reverse":
		return runReverse(os.Args[2:], os.Stdout)
	case "version":
		fmt.Printf("localuser %s\n", version.Info())
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", os.Args[1])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: localuser <subcommand> [flags] [args]

Subcommands:
  resolve     Resolve localuser names to addresses (and back, as a check)
  reverse     Map loopback addresses back to localuser names
  version     Print version information

Run 'localuser <subcommand> --help' for subcommand flags.
`)
}

// lookupFlags are the flags shared by resolve and reverse.
type lookupFlags struct {
	flagSet    *pflag.FlagSet
	family     string
	socketPath string
	uid        uint32
}

func newLookupFlags(name string) *lookupFlags {
	f := &lookupFlags{flagSet: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	f.flagSet.StringVar(&f.family, "family", "", "address family: ipv4 or ipv6 (default: both for resolve, by length for reverse)")
	f.flagSet.StringVar(&f.socketPath, "socket", "", "query a running localuser-service at this socket instead of resolving in-process")
	f.flagSet.Uint32Var(&f.uid, "uid", 0, "resolve as this UID instead of the current process UID (in-process only)")
	return f
}

// backend builds the lookup backend the parsed flags select.
func (f *lookupFlags) backend() (lookupBackend, error) {
	if f.socketPath != "" {
		if f.flagSet.Changed("uid") {
			return nil, fmt.Errorf("--uid cannot be combined with --socket: the service identifies callers by their socket credentials")
		}
		return &remoteBackend{client: service.NewClient(f.socketPath)}, nil
	}

	var uidSource func() uint32
	if f.flagSet.Changed("uid") {
		uid := f.uid
		uidSource = func() uint32 { return uid }
	}
	return &localBackend{resolver: localuser.NewResolver(uidSource)}, nil
}

// families returns the families a resolve should report: the one named
// by --family, or IPv4 and IPv6 when unset.
func (f *lookupFlags) families() ([]localuser.Family, error) {
	family, err := localuser.ParseFamily(f.family)
	if err != nil {
		return nil, err
	}
	if family == localuser.FamilyUnspec {
		return []localuser.Family{localuser.FamilyIPv4, localuser.FamilyIPv6}, nil
	}
	return []localuser.Family{family}, nil
}

// runResolve resolves each name argument in every requested family and
// reverses the resulting address as a round-trip check.
func runResolve(args []string, stdout io.Writer) error {
	flags := newLookupFlags("resolve")
	if err := flags.flagSet.Parse(args); err != nil {
		return err
	}
	names := flags.flagSet.Args()
	if len(names) == 0 {
		return fmt.Errorf("at least one name is required")
	}

	families, err := flags.families()
	if err != nil {
		return err
	}
	backend, err := flags.backend()
	if err != nil {
		return err
	}
	ctx := context.Background()

	for _, name := range names {
		fmt.Fprintf(stdout, "%s:\n", name)
		for _, family := range families {
			result, err := backend.resolve(ctx, name, family)
			if err != nil {
				return fmt.Errorf("resolving %q (%s): %w", name, family, err)
			}

			back, err := backend.reverse(ctx, result.Addr, result.Family)
			if err != nil {
				return fmt.Errorf("reversing %s: %w", formatAddr(result.Addr), err)
			}

			fmt.Fprintf(stdout, "  %-5s %-24s %s\n", result.Family, formatAddr(result.Addr), back.Name)
		}
	}
	return nil
}

// runReverse maps each address argument back to its localuser name.
func runReverse(args []string, stdout io.Writer) error {
	flags := newLookupFlags("reverse")
	if err := flags.flagSet.Parse(args); err != nil {
		return err
	}
	addresses := flags.flagSet.Args()
	if len(addresses) == 0 {
		return fmt.Errorf("at least one address is required")
	}

	family, err := localuser.ParseFamily(flags.family)
	if err != nil {
		return err
	}
	backend, err := flags.backend()
	if err != nil {
		return err
	}
	ctx := context.Background()

	for _, text := range addresses {
		addr, err := netip.ParseAddr(text)
		if err != nil {
			return fmt.Errorf("parsing address %q: %w", text, err)
		}

		result, err := backend.reverse(ctx, addr.AsSlice(), family)
		if err != nil {
			return fmt.Errorf("reversing %s: %w", text, err)
		}
		fmt.Fprintf(stdout, "%-24s %s\n", text, result.Name)
	}
	return nil
}

// formatAddr prints a wire address in its conventional text form.
func formatAddr(addr []byte) string {
	parsed, ok := netip.AddrFromSlice(addr)
	if !ok {
		return fmt.Sprintf("%x", addr)
	}
	return parsed.String()
}
