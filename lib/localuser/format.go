// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package localuser

const (
	// hostname is the literal every localuser name starts with.
	hostname = "localuser"

	// separator joins the hostname and the identifier fields.
	separator = '-'

	// MaxNameLength bounds every canonical name: the hostname, up to
	// three separators, and two identifiers of at most seven decimal
	// digits each fit well within it. Callers sizing name buffers can
	// rely on this.
	MaxNameLength = 49
)

// prefixMask/prefixValue pin the fixed 9-bit network prefix
// 0111 1111 1 (127.128.0.0/9) that every localuser address carries.
const (
	prefixMask  uint32 = 0xff800000
	prefixValue uint32 = 0x7f800000
)

// subFormat describes one of the three bit layouts inside the
// 127.128.0.0/9 network. An address matches the sub-format when its
// bits under mask equal value; the identifier fields sit below the
// discriminator, with the APPID shifted left over the UID when both
// are present.
type subFormat struct {
	mask  uint32
	value uint32

	hasUID   bool
	hasAppID bool

	uidBits    uint
	appidBits  uint
	appidShift uint
}

// subFormats is the closed set of layouts, in matching priority
// order. The order matters: the both-IDs discriminator is a single
// bit, so its wider window must be tested before the two three-bit
// discriminators. An address inside the /9 matching none of these has
// a reserved discriminator (000 or 001 after the prefix) and is
// invalid, never coerced.
var subFormats = [3]subFormat{
	{
		mask:  0xffc00000,
		value: 0x7fc00000,

		hasUID:   true,
		hasAppID: true,

		uidBits:    11,
		appidBits:  11,
		appidShift: 11,
	},
	{
		mask:  0xfff00000,
		value: 0x7fb00000,

		hasAppID:  true,
		appidBits: 20,
	},
	{
		mask:  0xfff00000,
		value: 0x7fa00000,

		hasUID:  true,
		uidBits: 20,
	},
}

// matches reports whether the host-order address carries this
// sub-format's discriminator.
func (f subFormat) matches(addr uint32) bool {
	return addr&f.mask == f.value
}

// maxUID is the largest UID the sub-format can carry.
func (f subFormat) maxUID() uint32 {
	return 1<<f.uidBits - 1
}

// maxAppID is the largest APPID the sub-format can carry.
func (f subFormat) maxAppID() uint32 {
	return 1<<f.appidBits - 1
}

// formatFor selects the sub-format for an identity shape. The
// no-UID/no-APPID combination has no layout; ok is false for it.
func formatFor(hasUID, hasAppID bool) (format subFormat, ok bool) {
	for _, candidate := range subFormats {
		if candidate.hasUID == hasUID && candidate.hasAppID == hasAppID {
			return candidate, true
		}
	}
	return subFormat{}, false
}
