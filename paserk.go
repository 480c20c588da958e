// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

// Package paserk implements the PASERK (Platform-Agnostic SERialized Keys)
// cryptographic core: key identifiers, public-key sealing of local keys,
// and plaintext key serialization. Sealing is available for PASETO
// versions V3 and V4; identifiers and plaintext keys for V1 through V4.
//
// This is a narrow public surface over internal/paserk, which holds the
// substantive implementation; see internal/paserk for the version-specific
// engines.
package paserk

import (
	"crypto/rand"
	"io"

	"filippo.io/paserk/internal/paserk"
)

// Version identifies a PASETO/PASERK protocol version.
type Version = paserk.Version

const (
	V1 = paserk.V1
	V2 = paserk.V2
	V3 = paserk.V3
	V4 = paserk.V4
)

// Purpose identifies the role a key plays.
type Purpose = paserk.Purpose

const (
	Local  = paserk.Local
	Secret = paserk.Secret
	Public = paserk.Public
)

// Kind discriminates the error conditions callers need to branch on.
type Kind = paserk.Kind

const (
	WrongHeader      = paserk.WrongHeader
	InvalidBase64    = paserk.InvalidBase64
	InvalidLength    = paserk.InvalidLength
	InvalidKey       = paserk.InvalidKey
	InvalidSignature = paserk.InvalidSignature
)

// Error is returned by every fallible operation in this package. Use
// errors.As to recover it and inspect Kind.
type Error = paserk.Error

// Key is raw key material tagged with the (Version, Purpose) pair that
// determines its length and the primitives used on it.
type Key = paserk.Key

// NewKey validates raw against the exact length required for (v, p) and
// returns a Key that owns a private copy of it.
func NewKey(v Version, p Purpose, raw []byte) (Key, error) {
	return paserk.NewKey(v, p, raw)
}

// ParseKey parses a plaintext PASERK string (e.g. "k4.local.<base64>").
func ParseKey(s string, v Version, p Purpose) (Key, error) {
	return paserk.ParseKey(s, v, p)
}

// KeyId is the 33-byte deterministic identifier derived from a Key.
type KeyId = paserk.KeyId

// DeriveId computes the key identifier (lid/sid/pid) for key.
func DeriveId(key Key) KeyId {
	return paserk.DeriveId(key)
}

// ParseKeyId parses a key-identifier PASERK string (e.g. "k4.lid.<base64>").
func ParseKeyId(s string, v Version, p Purpose) (KeyId, error) {
	return paserk.ParseKeyId(s, v, p)
}

// SealedKey is a Local key wrapped under an asymmetric recipient public key.
type SealedKey = paserk.SealedKey

// Seal encrypts localKey under publicKey using crypto/rand.Reader for
// ephemeral key generation. Use SealWithRNG to inject a deterministic
// source, e.g. in tests.
func Seal(localKey, publicKey Key) (SealedKey, error) {
	return paserk.Seal(localKey, publicKey, rand.Reader)
}

// SealWithRNG encrypts localKey under publicKey, reading ephemeral key
// material from rng. rng must be cryptographically secure in production;
// callers in tests may substitute a deterministic byte source to make
// sealing reproducible.
func SealWithRNG(localKey, publicKey Key, rng io.Reader) (SealedKey, error) {
	return paserk.Seal(localKey, publicKey, rng)
}

// Unseal decrypts a SealedKey with the matching Secret key.
func Unseal(sealed SealedKey, secretKey Key) (Key, error) {
	return paserk.Unseal(sealed, secretKey)
}

// ParseSealedKey parses a sealed-envelope PASERK string (e.g.
// "k4.seal.<base64>") for the given version.
func ParseSealedKey(s string, v Version) (SealedKey, error) {
	return paserk.ParseSealedKey(s, v)
}
