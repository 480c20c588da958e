// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"io"
)

// v3Seal implements PKE for V3: an ephemeral P-384 ECDH KEM, SHA-384 for
// the KDF and HMAC-SHA-384 for the tag, AES-256-CTR as the cipher (again
// encrypt-then-MAC, the tag is checked before decryption).
type v3Seal struct{}

const (
	v3Header  = "k3."
	v3SealTag = "seal."

	// maxEphemeralAttempts bounds the resampling loop needed when a
	// candidate ephemeral scalar is zero or out of the P-384 subgroup.
	// crypto/ecdh rejects such a candidate, and a uniform 48-byte string
	// is one with negligible probability, so more than a couple of
	// attempts is astronomically unlikely; this is a backstop against a
	// broken or adversarial RNG, not a normal path.
	maxEphemeralAttempts = 16
)

func (v3Seal) tagLen() int { return 48 }
func (v3Seal) epkLen() int { return 49 }
func (v3Seal) edkLen() int { return 32 }

func v3Sha384(domainByte byte, xk, otherPoint, pk []byte) []byte {
	h := sha512.New384()
	h.Write([]byte{domainByte})
	h.Write([]byte(v3Header))
	h.Write([]byte(v3SealTag))
	h.Write(xk)
	h.Write(otherPoint)
	h.Write(pk)
	return h.Sum(nil)
}

func v3Tag(ak, epk, edk []byte) []byte {
	m := hmac.New(sha512.New384, ak)
	m.Write([]byte(v3Header))
	m.Write([]byte(v3SealTag))
	m.Write(epk)
	m.Write(edk)
	return m.Sum(nil)
}

func v3Crypt(ek, n, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(ek)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	cipher.NewCTR(block, n).XORKeyStream(out, in)
	return out, nil
}

func v3GenerateEphemeral(rng io.Reader) (*ecdh.PrivateKey, error) {
	var lastErr error
	for i := 0; i < maxEphemeralAttempts; i++ {
		candidate := make([]byte, 48)
		if _, err := io.ReadFull(rng, candidate); err != nil {
			return nil, err
		}
		sk, err := ecdh.P384().NewPrivateKey(candidate)
		if err == nil {
			return sk, nil
		}
		lastErr = err
	}
	return nil, errorf(InvalidKey, "failed to sample a valid ephemeral scalar: %v", lastErr)
}

func (v3Seal) seal(pdk, recipientPublic []byte, rng io.Reader) (tag, epk, edk []byte, err error) {
	pk, err := p384PublicFromCompressed(recipientPublic)
	if err != nil {
		return nil, nil, nil, err
	}

	esk, err := v3GenerateEphemeral(rng)
	if err != nil {
		return nil, nil, nil, err
	}
	epk = p384CompressPublic(esk.PublicKey())

	xk, err := esk.ECDH(pk)
	if err != nil {
		return nil, nil, nil, errorf(InvalidKey, "%v", err)
	}

	ekn := v3Sha384(0x01, xk, epk, recipientPublic)
	ek, n := ekn[:32], ekn[32:48]
	ak := v3Sha384(0x02, xk, epk, recipientPublic)

	edk, err = v3Crypt(ek, n, pdk)
	if err != nil {
		return nil, nil, nil, err
	}

	tag = v3Tag(ak, epk, edk)
	return tag, epk, edk, nil
}

func (v3Seal) unseal(tag, epk, edk []byte, unsealingSecret []byte) ([]byte, error) {
	sk, err := ecdh.P384().NewPrivateKey(unsealingSecret)
	if err != nil {
		return nil, errorf(InvalidKey, "%v", err)
	}
	pk := p384CompressPublic(sk.PublicKey())

	ePub, err := p384PublicFromCompressed(epk)
	if err != nil {
		return nil, err
	}
	xk, err := sk.ECDH(ePub)
	if err != nil {
		return nil, errorf(InvalidKey, "%v", err)
	}

	ak := v3Sha384(0x02, xk, epk, pk)
	wantTag := v3Tag(ak, epk, edk)

	// Constant-time compare, and decryption never runs on a mismatch:
	// checking the tag first keeps a forged ciphertext from reaching the
	// cipher at all.
	if subtle.ConstantTimeCompare(tag, wantTag) != 1 {
		return nil, errorf(InvalidSignature, "tag mismatch")
	}

	ekn := v3Sha384(0x01, xk, epk, pk)
	ek, n := ekn[:32], ekn[32:48]
	return v3Crypt(ek, n, edk)
}
