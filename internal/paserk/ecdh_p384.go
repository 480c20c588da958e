// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import (
	"crypto/ecdh"
	"crypto/elliptic"
)

// crypto/ecdh only accepts and emits uncompressed SEC1 points, but the V3
// wire layout is always the 49-byte compressed form. These helpers bridge
// the two via crypto/elliptic's compression routines.

func p384PublicFromCompressed(compressed []byte) (*ecdh.PublicKey, error) {
	x, y := elliptic.UnmarshalCompressed(elliptic.P384(), compressed)
	if x == nil {
		return nil, errorf(InvalidKey, "malformed P-384 point")
	}
	uncompressed := elliptic.Marshal(elliptic.P384(), x, y)
	pk, err := ecdh.P384().NewPublicKey(uncompressed)
	if err != nil {
		return nil, errorf(InvalidKey, "%v", err)
	}
	return pk, nil
}

func p384CompressPublic(pk *ecdh.PublicKey) []byte {
	x, y := elliptic.Unmarshal(elliptic.P384(), pk.Bytes())
	return elliptic.MarshalCompressed(elliptic.P384(), x, y)
}

func p384PrivateFromScalar(scalar []byte) (*ecdh.PrivateKey, error) {
	sk, err := ecdh.P384().NewPrivateKey(scalar)
	if err != nil {
		return nil, errorf(InvalidKey, "%v", err)
	}
	return sk, nil
}
