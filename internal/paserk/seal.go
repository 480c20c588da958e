// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import (
	"crypto/rand"
	"io"
	"strings"

	"filippo.io/paserk/internal/b64"
)

// SealedKey is a Local key wrapped under an asymmetric recipient public
// key: tag || ephemeral public key || encrypted data key. The three
// fields are never reordered and are always transmitted and parsed as one
// opaque blob.
type SealedKey struct {
	Version Version
	tag     []byte
	epk     []byte
	edk     []byte
}

// sealEngine is implemented once per version that supports sealing. V1
// and V2 are legacy families limited to plaintext keys and identifiers,
// with no defined sealing construction, so engineFor only ever returns
// v3Seal or v4Seal.
type sealEngine interface {
	tagLen() int
	epkLen() int
	edkLen() int
	seal(pdk, recipientPublic []byte, rng io.Reader) (tag, epk, edk []byte, err error)
	unseal(tag, epk, edk []byte, unsealingSecret []byte) (pdk []byte, err error)
}

func engineFor(v Version) (sealEngine, error) {
	switch v {
	case V3:
		return v3Seal{}, nil
	case V4:
		return v4Seal{}, nil
	default:
		return nil, errorf(InvalidKey, "%v does not support sealing", v)
	}
}

// Seal encrypts a Local key under an asymmetric Public key, using rng for
// ephemeral key generation. rng may be a deterministic source in tests;
// production callers should pass crypto/rand.Reader (the default used by
// the Seal convenience wrapper in paserk.go).
func Seal(localKey, publicKey Key, rng io.Reader) (SealedKey, error) {
	if localKey.Purpose != Local {
		return SealedKey{}, errorf(InvalidKey, "Seal requires a Local key, got %v", localKey.Purpose)
	}
	if publicKey.Purpose != Public {
		return SealedKey{}, errorf(InvalidKey, "Seal requires a Public recipient key, got %v", publicKey.Purpose)
	}
	if localKey.Version != publicKey.Version {
		return SealedKey{}, errorf(InvalidKey, "version mismatch: local key is %v, recipient key is %v", localKey.Version, publicKey.Version)
	}
	eng, err := engineFor(localKey.Version)
	if err != nil {
		return SealedKey{}, err
	}
	if rng == nil {
		rng = rand.Reader
	}
	tag, epk, edk, err := eng.seal(localKey.raw, publicKey.raw, rng)
	if err != nil {
		return SealedKey{}, err
	}
	return SealedKey{Version: localKey.Version, tag: tag, epk: epk, edk: edk}, nil
}

// Unseal decrypts a SealedKey with the matching Secret key. The tag is
// verified in constant time before anything about edk is trusted or
// decrypted; see the engines' unseal methods for the encrypt-then-MAC
// ordering this depends on.
func Unseal(sealed SealedKey, secretKey Key) (Key, error) {
	if secretKey.Purpose != Secret {
		return Key{}, errorf(InvalidKey, "Unseal requires a Secret key, got %v", secretKey.Purpose)
	}
	if sealed.Version != secretKey.Version {
		return Key{}, errorf(WrongHeader, "sealed envelope is %v, secret key is %v", sealed.Version, secretKey.Version)
	}
	eng, err := engineFor(sealed.Version)
	if err != nil {
		return Key{}, err
	}
	pdk, err := eng.unseal(sealed.tag, sealed.epk, sealed.edk, secretKey.raw)
	if err != nil {
		return Key{}, err
	}
	return NewKey(sealed.Version, Local, pdk)
}

// String encodes the sealed envelope as KEY_HEADER || "seal." ||
// Base64Url(tag || epk || edk).
func (s SealedKey) String() string {
	total := make([]byte, 0, len(s.tag)+len(s.epk)+len(s.edk))
	total = append(total, s.tag...)
	total = append(total, s.epk...)
	total = append(total, s.edk...)
	return s.Version.header() + "seal." + b64.EncodeToString(total)
}

// ParseSealedKey parses a sealed-envelope PASERK string for the given
// version, rejecting the wrong header or a mis-sized payload before any
// curve or hash operation runs.
func ParseSealedKey(s string, v Version) (SealedKey, error) {
	rest, ok := strings.CutPrefix(s, v.header())
	if !ok {
		return SealedKey{}, errorf(WrongHeader, "expected prefix %q", v.header())
	}
	rest, ok = strings.CutPrefix(rest, "seal.")
	if !ok {
		return SealedKey{}, errorf(WrongHeader, `expected "seal." type tag`)
	}

	eng, err := engineFor(v)
	if err != nil {
		return SealedKey{}, err
	}
	total := eng.tagLen() + eng.epkLen() + eng.edkLen()

	// Reject before decoding unless the Base64 length is exactly the
	// unpadded encoded length of `total` bytes.
	if b64.EncodedLen(total) != len(rest) {
		return SealedKey{}, errorf(InvalidLength, "sealed payload has the wrong length")
	}

	buf := make([]byte, total)
	if err := b64.DecodeInto(rest, buf); err != nil {
		return SealedKey{}, wrapB64Err(err)
	}

	return SealedKey{
		Version: v,
		tag:     buf[:eng.tagLen()],
		epk:     buf[eng.tagLen() : eng.tagLen()+eng.epkLen()],
		edk:     buf[eng.tagLen()+eng.epkLen():],
	}, nil
}
