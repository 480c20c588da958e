// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

// Package b64 implements the fixed-size, URL-safe, unpadded Base64 encoding
// used to frame every PASERK payload.
package b64

import (
	"encoding/base64"
	"errors"
	"strings"
)

var enc = base64.RawURLEncoding

// ErrInvalidBase64 and ErrInvalidLength are sentinel errors returned by
// DecodeInto; callers map them onto the package-level error discriminants.
var (
	ErrInvalidBase64 = errors.New("b64: invalid character in payload")
	ErrInvalidLength = errors.New("b64: decoded length does not match expected size")
)

// EncodeToString encodes b as URL-safe, unpadded Base64.
func EncodeToString(b []byte) string {
	return enc.EncodeToString(b)
}

// DecodeInto decodes s into dst, which must be exactly sized for the
// expected payload. It fails if s contains a newline (Go's base64 decoder
// otherwise ignores embedded newlines, which would be a malleability bug),
// if s contains any character outside the URL-safe alphabet, or if the
// decoded length does not equal len(dst).
func DecodeInto(s string, dst []byte) error {
	if strings.ContainsAny(s, "\n\r") {
		return ErrInvalidBase64
	}
	if enc.DecodedLen(len(s)) != len(dst) {
		return ErrInvalidLength
	}
	n, err := enc.Decode(dst, []byte(s))
	if err != nil {
		return ErrInvalidBase64
	}
	if n != len(dst) {
		return ErrInvalidLength
	}
	return nil
}

// EncodedLen returns the length of the Base64 encoding of n raw bytes.
func EncodedLen(n int) int {
	return enc.EncodedLen(n)
}
