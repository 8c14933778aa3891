// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package localuser

import "errors"

// The decode outcomes callers must tell apart. A lookup adapter maps
// ErrNotFound to "not ours, let the next resolver try" and everything
// else to a definitive failure, except ErrBufferTooSmall which is
// retryable with a larger buffer.
var (
	// ErrNotFound reports input that does not belong to the localuser
	// family at all: a name without the localuser prefix, or an
	// address outside the 127.128.0.0/9 network.
	ErrNotFound = errors.New("not a localuser name or address")

	// ErrInvalid reports input that matches the family's shape but
	// violates it: malformed digits, trailing characters after a
	// parsed identifier, a dangling separator, or an address inside
	// 127.128.0.0/9 whose discriminator bits are reserved.
	ErrInvalid = errors.New("malformed localuser name or address")

	// ErrOutOfRange reports a well-formed identifier whose value
	// exceeds the bit budget of the applicable sub-format, or
	// overflows 32-bit unsigned accumulation entirely.
	ErrOutOfRange = errors.New("identifier out of range")

	// ErrBufferTooSmall reports a record buffer too small for the
	// rendered entry. The required size is computable in advance with
	// RecordSize; the call can be retried with a larger buffer.
	ErrBufferTooSmall = errors.New("record buffer too small")

	// ErrUnsupportedFamily reports an address family other than IPv4
	// or IPv4-mapped IPv6.
	ErrUnsupportedFamily = errors.New("unsupported address family")
)
