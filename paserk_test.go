// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"

	"filippo.io/paserk"
)

func ExampleNewKey() {
	raw := make([]byte, 32)
	key, err := paserk.NewKey(paserk.V4, paserk.Local, raw)
	if err != nil {
		log.Fatalf("Failed to build key: %v", err)
	}

	fmt.Println(strings.HasPrefix(key.String(), "k4.local."))
	// Output:
	// true
}

func ExampleDeriveId() {
	raw := make([]byte, 32)
	key, err := paserk.NewKey(paserk.V4, paserk.Local, raw)
	if err != nil {
		log.Fatalf("Failed to build key: %v", err)
	}

	id := paserk.DeriveId(key)
	fmt.Println(strings.HasPrefix(id.String(), "k4.lid."))
	// Output:
	// true
}

func ExampleSeal() {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate recipient key: %v", err)
	}
	secretKey, err := paserk.NewKey(paserk.V4, paserk.Secret, priv)
	if err != nil {
		log.Fatalf("Failed to build secret key: %v", err)
	}
	publicKey, err := secretKey.PublicKey()
	if err != nil {
		log.Fatalf("Failed to derive public key: %v", err)
	}

	localRaw := make([]byte, 32)
	if _, err := rand.Read(localRaw); err != nil {
		log.Fatalf("Failed to generate local key: %v", err)
	}
	localKey, err := paserk.NewKey(paserk.V4, paserk.Local, localRaw)
	if err != nil {
		log.Fatalf("Failed to build local key: %v", err)
	}

	sealed, err := paserk.Seal(localKey, publicKey)
	if err != nil {
		log.Fatalf("Failed to seal key: %v", err)
	}

	unsealed, err := paserk.Unseal(sealed, secretKey)
	if err != nil {
		log.Fatalf("Failed to unseal key: %v", err)
	}

	fmt.Println(string(unsealed.Bytes()) == string(localKey.Bytes()))
	// Output:
	// true
}

func ExampleUnseal_tamperedTag() {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate recipient key: %v", err)
	}
	secretKey, err := paserk.NewKey(paserk.V4, paserk.Secret, priv)
	if err != nil {
		log.Fatalf("Failed to build secret key: %v", err)
	}
	publicKey, err := secretKey.PublicKey()
	if err != nil {
		log.Fatalf("Failed to derive public key: %v", err)
	}
	localKey, err := paserk.NewKey(paserk.V4, paserk.Local, make([]byte, 32))
	if err != nil {
		log.Fatalf("Failed to build local key: %v", err)
	}

	sealed, err := paserk.Seal(localKey, publicKey)
	if err != nil {
		log.Fatalf("Failed to seal key: %v", err)
	}

	// Change the first payload character of the serialized envelope, which
	// encodes the top bits of the tag, to exercise the parser as well as the
	// tag check.
	s := sealed.String()
	prefix := "k4.seal."
	tampered := prefix + flipChar(s[len(prefix)]) + s[len(prefix)+1:]
	reparsed, err := paserk.ParseSealedKey(tampered, paserk.V4)
	if err != nil {
		log.Fatalf("Failed to parse sealed key: %v", err)
	}

	_, err = paserk.Unseal(reparsed, secretKey)
	var pe *paserk.Error
	fmt.Println(errors.As(err, &pe) && pe.Kind == paserk.InvalidSignature)
	// Output:
	// true
}

func flipChar(c byte) string {
	if c == 'A' {
		return "B"
	}
	return "A"
}
