// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import (
	"strings"

	"filippo.io/paserk/internal/b64"
)

// String encodes k as its plaintext PASERK form: KEY_HEADER || HEADER ||
// Base64Url(raw). This is not a secure serialization — it's the bare key.
func (k Key) String() string {
	return k.Version.header() + k.Purpose.header() + b64.EncodeToString(k.raw)
}

// ParseKey parses a plaintext PASERK string, validating that it names the
// expected (Version, Purpose) pair before decoding the payload.
func ParseKey(s string, v Version, p Purpose) (Key, error) {
	rest, ok := strings.CutPrefix(s, v.header())
	if !ok {
		return Key{}, errorf(WrongHeader, "expected prefix %q", v.header())
	}
	rest, ok = strings.CutPrefix(rest, p.header())
	if !ok {
		return Key{}, errorf(WrongHeader, "expected prefix %q", p.header())
	}
	n, ok := keyLen(v, p)
	if !ok {
		return Key{}, errorf(InvalidKey, "unsupported purpose %v for %v", p, v)
	}
	raw := make([]byte, n)
	if err := b64.DecodeInto(rest, raw); err != nil {
		return Key{}, wrapB64Err(err)
	}
	return NewKey(v, p, raw)
}

func wrapB64Err(err error) *Error {
	if err == b64.ErrInvalidLength {
		return errorf(InvalidLength, "decoded payload has the wrong length")
	}
	return errorf(InvalidBase64, "payload contains a non-alphabet character")
}
