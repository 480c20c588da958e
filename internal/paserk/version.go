// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

// Version is a PASETO/PASERK protocol version. It is a closed set; there is
// no mechanism to register new versions at runtime.
type Version int

const (
	V1 Version = iota + 1
	V2
	V3
	V4
)

// KEY_HEADER is the ASCII prefix every PASERK string for this version
// starts with, e.g. "k4.".
func (v Version) header() string {
	switch v {
	case V1:
		return "k1."
	case V2:
		return "k2."
	case V3:
		return "k3."
	case V4:
		return "k4."
	default:
		return ""
	}
}

func (v Version) String() string {
	switch v {
	case V1:
		return "V1"
	case V2:
		return "V2"
	case V3:
		return "V3"
	case V4:
		return "V4"
	default:
		return "Vinvalid"
	}
}

func (v Version) valid() bool {
	return v == V1 || v == V2 || v == V3 || v == V4
}

// Purpose is the role a key plays: symmetric (Local) or asymmetric
// (Secret/Public).
type Purpose int

const (
	Local Purpose = iota + 1
	Secret
	Public
)

// HEADER is the mid-fix used in plaintext serialization, e.g. "local.".
func (p Purpose) header() string {
	switch p {
	case Local:
		return "local."
	case Secret:
		return "secret."
	case Public:
		return "public."
	default:
		return ""
	}
}

// idTag is the mid-fix used in key-identifier serialization, e.g. "lid.".
func (p Purpose) idTag() string {
	switch p {
	case Local:
		return "lid."
	case Secret:
		return "sid."
	case Public:
		return "pid."
	default:
		return ""
	}
}

func (p Purpose) String() string {
	switch p {
	case Local:
		return "Local"
	case Secret:
		return "Secret"
	case Public:
		return "Public"
	default:
		return "Pinvalid"
	}
}

// keyLen returns the exact raw byte length for (v, p), and false if the
// pair is not defined. V1 shares V3's NIST geometry, and V2 shares V4's
// libsodium geometry; both are legacy header families with no sealing
// support, so they participate in plaintext serialization and ID
// derivation only.
func keyLen(v Version, p Purpose) (int, bool) {
	switch v {
	case V1, V3:
		switch p {
		case Local:
			return 32, true
		case Secret:
			return 48, true
		case Public:
			return 49, true
		}
	case V2, V4:
		switch p {
		case Local:
			return 32, true
		case Secret:
			return 64, true
		case Public:
			return 32, true
		}
	}
	return 0, false
}
