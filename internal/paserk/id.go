// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import (
	"crypto/sha512"
	"strings"

	"filippo.io/paserk/internal/b64"
	"golang.org/x/crypto/blake2b"
)

// idLen is the fixed size of every key identifier, regardless of version.
const idLen = 33

// KeyId is the 33-byte deterministic identifier derived from a Key. It is
// tagged with the same (Version, Purpose) pair as the key it was derived
// from, so a KeyId<V4,Local> and a KeyId<V4,Public> can never be compared
// or parsed into each other even if their raw bytes happened to collide.
type KeyId struct {
	Version Version
	Purpose Purpose
	id      [idLen]byte
}

// Equal reports whether two identifiers are byte-for-byte equal. It does
// not need to be constant-time: identifiers are public by design.
func (id KeyId) Equal(other KeyId) bool {
	return id.Version == other.Version && id.Purpose == other.Purpose && id.id == other.id
}

// Bytes returns a copy of the 33-byte identifier.
func (id KeyId) Bytes() []byte {
	out := make([]byte, idLen)
	copy(out, id.id[:])
	return out
}

// DeriveId hashes key into its 33-byte identifier, using SHA-384 for the
// V1/V3 family and unkeyed 33-byte BLAKE2b for the V2/V4 family. The inputs are
// concatenated in a fixed, domain-separating order:
// KEY_HEADER, ID tag, KEY_HEADER again, HEADER, then the Base64Url
// encoding of the raw key. Reusing KEY_HEADER twice and folding in both
// mid-fixes is what keeps a V4 local key's id from colliding with a V4
// secret key's id even though nothing else about the hash input changes
// shape.
func DeriveId(key Key) KeyId {
	header := key.Version.header()
	idTag := key.Purpose.idTag()
	purposeHeader := key.Purpose.header()
	encoded := b64.EncodeToString(key.raw)

	var out [idLen]byte
	switch key.Version {
	case V1, V3:
		h := sha512.New384()
		h.Write([]byte(header))
		h.Write([]byte(idTag))
		h.Write([]byte(header))
		h.Write([]byte(purposeHeader))
		h.Write([]byte(encoded))
		copy(out[:], h.Sum(nil)[:idLen])
	case V2, V4:
		h, _ := blake2b.New(idLen, nil)
		h.Write([]byte(header))
		h.Write([]byte(idTag))
		h.Write([]byte(header))
		h.Write([]byte(purposeHeader))
		h.Write([]byte(encoded))
		copy(out[:], h.Sum(nil))
	}
	return KeyId{Version: key.Version, Purpose: key.Purpose, id: out}
}

// String encodes id as KEY_HEADER || ID || Base64Url(33 bytes).
func (id KeyId) String() string {
	return id.Version.header() + id.Purpose.idTag() + b64.EncodeToString(id.id[:])
}

// ParseKeyId parses a key-identifier PASERK string for the given
// (Version, Purpose).
func ParseKeyId(s string, v Version, p Purpose) (KeyId, error) {
	rest, ok := strings.CutPrefix(s, v.header())
	if !ok {
		return KeyId{}, errorf(WrongHeader, "expected prefix %q", v.header())
	}
	rest, ok = strings.CutPrefix(rest, p.idTag())
	if !ok {
		return KeyId{}, errorf(WrongHeader, "expected prefix %q", p.idTag())
	}
	var id [idLen]byte
	if err := b64.DecodeInto(rest, id[:]); err != nil {
		return KeyId{}, wrapB64Err(err)
	}
	return KeyId{Version: v, Purpose: p, id: id}, nil
}
