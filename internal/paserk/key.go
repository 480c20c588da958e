// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import "crypto/ed25519"

// Key is raw key material tagged with the (Version, Purpose) pair that
// defines its length and the primitives used on it. The pair is a runtime
// discriminant rather than a type parameter: generics can't carry the
// per-(Version, Purpose) associated constants (header strings, byte
// lengths) without an interface-based indirection that would cost more
// clarity than the type safety buys back, so construction goes through
// the validating NewKey and every version-specific operation switches
// exhaustively on the two enums instead.
type Key struct {
	Version Version
	Purpose Purpose
	raw     []byte
}

// NewKey validates raw against the exact byte length required for
// (v, p) and returns a Key owning a private copy of it.
func NewKey(v Version, p Purpose, raw []byte) (Key, error) {
	if !v.valid() {
		return Key{}, errorf(InvalidKey, "unknown version %v", v)
	}
	n, ok := keyLen(v, p)
	if !ok {
		return Key{}, errorf(InvalidKey, "unsupported purpose %v for %v", p, v)
	}
	if len(raw) != n {
		return Key{}, errorf(InvalidLength, "%v %v key must be %d bytes, got %d", v, p, n, len(raw))
	}
	k := Key{Version: v, Purpose: p, raw: make([]byte, n)}
	copy(k.raw, raw)
	return k, nil
}

// Bytes returns a copy of the raw key material.
func (k Key) Bytes() []byte {
	out := make([]byte, len(k.raw))
	copy(out, k.raw)
	return out
}

// Zero overwrites the key's backing storage. Go's garbage collector gives
// no destructor hook, so callers that need secret hygiene must call this
// explicitly once the key is no longer needed.
func (k Key) Zero() {
	for i := range k.raw {
		k.raw[i] = 0
	}
}

// PublicKey derives the Public counterpart of a Secret key. It is a pure
// function of the secret: for V3 it's the P-384 scalar-basepoint product
// (compressed SEC1), for V4 the Ed25519 public key is stored alongside the
// seed in the 64-byte secret encoding and is simply split out, mirroring
// Go's own ed25519.PrivateKey layout.
func (k Key) PublicKey() (Key, error) {
	if k.Purpose != Secret {
		return Key{}, errorf(InvalidKey, "PublicKey requires a Secret key, got %v", k.Purpose)
	}
	switch k.Version {
	case V3, V1:
		sk, err := p384PrivateFromScalar(k.raw)
		if err != nil {
			return Key{}, err
		}
		return NewKey(k.Version, Public, p384CompressPublic(sk.PublicKey()))
	case V4, V2:
		pub := ed25519.PrivateKey(k.raw).Public().(ed25519.PublicKey)
		return NewKey(k.Version, Public, pub)
	default:
		return Key{}, errorf(InvalidKey, "unknown version %v", k.Version)
	}
}
