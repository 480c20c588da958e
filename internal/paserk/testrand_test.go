// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import (
	"crypto/cipher"

	"golang.org/x/crypto/chacha20"
)

// fixedRand returns a deterministic, unlimited byte stream derived from
// seed, for use as the rng argument to Seal in tests: a ChaCha20
// keystream makes a reproducible source of "random" bytes without
// special-casing the production code path.
func fixedRand(seed string) cipher.StreamReader {
	key := make([]byte, chacha20.KeySize)
	copy(key, seed)
	c, err := chacha20.NewUnauthenticatedCipher(key, make([]byte, chacha20.NonceSize))
	if err != nil {
		panic(err)
	}
	return cipher.StreamReader{S: c, R: zeroReader{}}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
