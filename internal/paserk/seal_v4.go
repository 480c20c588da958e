// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import (
	"crypto/sha512"
	"crypto/subtle"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/curve25519"
)

// v4Seal implements PKE for V4: an ephemeral X25519 KEM against the
// X25519 point birationally equivalent to the recipient's Ed25519 public
// key, BLAKE2b for the KDF and MAC, and XChaCha20 as the unauthenticated
// stream cipher (the MAC is computed separately, encrypt-then-MAC).
type v4Seal struct{}

const (
	v4Header  = "k4."
	v4SealTag = "seal."
)

func (v4Seal) tagLen() int { return 32 }
func (v4Seal) epkLen() int { return 32 }
func (v4Seal) edkLen() int { return 32 }

// x25519Basepoint is the canonical Curve25519 generator.
var x25519Basepoint = []byte{
	0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// x25519 performs the scalar multiplication scalar*point and rejects a
// result that lands on a low-order point, which would otherwise hand an
// attacker a shared secret that doesn't depend on the scalar.
func x25519(scalar, point []byte) ([]byte, error) {
	var dst, in, base [32]byte
	copy(in[:], scalar)
	if &point[0] == &x25519Basepoint[0] {
		curve25519.ScalarBaseMult(&dst, &in)
		return dst[:], nil
	}
	copy(base[:], point)
	curve25519.ScalarMult(&dst, &in, &base)
	var zero [32]byte
	if subtle.ConstantTimeCompare(dst[:], zero[:]) == 1 {
		return nil, errorf(InvalidKey, "shared secret is a low-order point")
	}
	return dst[:], nil
}

// ed25519PublicKeyToX25519 computes the birationally-equivalent Montgomery
// u-coordinate for an Ed25519 public key, so it can be used as an X25519
// public value for the KEM step.
func ed25519PublicKeyToX25519(pk []byte) ([]byte, error) {
	p, err := new(edwards25519.Point).SetBytes(pk)
	if err != nil {
		return nil, errorf(InvalidKey, "malformed Ed25519 public key: %v", err)
	}
	return p.BytesMontgomery(), nil
}

// clampX25519Scalar applies the RFC 7748 clamping to a 32-byte seed so it
// can be used as an X25519 scalar.
func clampX25519Scalar(seed []byte) []byte {
	s := make([]byte, 32)
	copy(s, seed)
	s[0] &= 248
	s[31] &= 127
	s[31] |= 64
	return s
}

func v4KdfInputs(domainByte byte, xk, epk, xpk []byte) [][]byte {
	return [][]byte{{domainByte}, []byte(v4Header), []byte(v4SealTag), xk, epk, xpk}
}

func v4DeriveEK(xk, epk, xpk []byte) []byte {
	h, _ := blake2b.New(32, nil)
	for _, b := range v4KdfInputs(0x01, xk, epk, xpk) {
		h.Write(b)
	}
	return h.Sum(nil)
}

func v4DeriveAK(xk, epk, xpk []byte) []byte {
	h, _ := blake2b.New(32, nil)
	for _, b := range v4KdfInputs(0x02, xk, epk, xpk) {
		h.Write(b)
	}
	return h.Sum(nil)
}

func v4DeriveNonce(epk, xpk []byte) []byte {
	h, _ := blake2b.New(24, nil)
	h.Write(epk)
	h.Write(xpk)
	return h.Sum(nil)
}

func v4Tag(ak, epk, edk []byte) ([]byte, error) {
	h, err := blake2b.New(32, ak)
	if err != nil {
		return nil, err
	}
	h.Write([]byte(v4Header))
	h.Write([]byte(v4SealTag))
	h.Write(epk)
	h.Write(edk)
	return h.Sum(nil), nil
}

func v4Crypt(ek, nonce, in []byte) ([]byte, error) {
	c, err := chacha20.NewUnauthenticatedCipher(ek, nonce)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	c.XORKeyStream(out, in)
	return out, nil
}

func (v4Seal) seal(pdk, recipientPublic []byte, rng io.Reader) (tag, epk, edk []byte, err error) {
	xpk, err := ed25519PublicKeyToX25519(recipientPublic)
	if err != nil {
		return nil, nil, nil, err
	}

	eskSeed := make([]byte, 32)
	if _, err := io.ReadFull(rng, eskSeed); err != nil {
		return nil, nil, nil, err
	}
	esk := clampX25519Scalar(eskSeed)

	epk, err = x25519(esk, x25519Basepoint)
	if err != nil {
		return nil, nil, nil, errorf(InvalidKey, "%v", err)
	}
	xk, err := x25519(esk, xpk)
	if err != nil {
		return nil, nil, nil, errorf(InvalidKey, "%v", err)
	}

	ek := v4DeriveEK(xk, epk, xpk)
	ak := v4DeriveAK(xk, epk, xpk)
	nonce := v4DeriveNonce(epk, xpk)

	edk, err = v4Crypt(ek, nonce, pdk)
	if err != nil {
		return nil, nil, nil, err
	}

	tag, err = v4Tag(ak, epk, edk)
	if err != nil {
		return nil, nil, nil, err
	}
	return tag, epk, edk, nil
}

func (v4Seal) unseal(tag, epk, edk []byte, unsealingSecret []byte) ([]byte, error) {
	// unsealingSecret is the 64-byte V4 Secret: a 32-byte seed followed by
	// the embedded public key (Go's ed25519.PrivateKey layout).
	seed := unsealingSecret[:32]
	expanded := sha512.Sum512(seed)
	xsk := clampX25519Scalar(expanded[:32])

	xpk, err := x25519(xsk, x25519Basepoint)
	if err != nil {
		return nil, errorf(InvalidKey, "%v", err)
	}
	xk, err := x25519(xsk, epk)
	if err != nil {
		return nil, errorf(InvalidKey, "%v", err)
	}

	ak := v4DeriveAK(xk, epk, xpk)
	wantTag, err := v4Tag(ak, epk, edk)
	if err != nil {
		return nil, err
	}

	// Constant-time compare, and nothing past this point runs on a
	// mismatch: the MAC is checked before the stream cipher ever touches
	// edk, since XChaCha20 alone is unauthenticated.
	if subtle.ConstantTimeCompare(tag, wantTag) != 1 {
		return nil, errorf(InvalidSignature, "tag mismatch")
	}

	ek := v4DeriveEK(xk, epk, xpk)
	nonce := v4DeriveNonce(epk, xpk)
	return v4Crypt(ek, nonce, edk)
}
