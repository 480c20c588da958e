// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package paserk

import "fmt"

// Kind discriminates the error conditions a caller needs to branch on.
// Detail strings carried alongside a Kind are for diagnostics only and
// never include key material.
type Kind int

const (
	_ Kind = iota
	// WrongHeader means the version or type prefix didn't match.
	WrongHeader
	// InvalidBase64 means the payload contained a non-alphabet character.
	InvalidBase64
	// InvalidLength means the decoded payload length didn't match the
	// (version, purpose) byte layout.
	InvalidLength
	// InvalidKey means a curve point or secret failed to parse.
	InvalidKey
	// InvalidSignature means tag verification failed during unseal.
	InvalidSignature
)

func (k Kind) String() string {
	switch k {
	case WrongHeader:
		return "wrong header"
	case InvalidBase64:
		return "invalid base64"
	case InvalidLength:
		return "invalid length"
	case InvalidKey:
		return "invalid key"
	case InvalidSignature:
		return "invalid signature"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every fallible operation in this
// package. Kind is always set and is the only part of Error a caller
// should match on; Detail is a diagnostic string with no key material.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "paserk: " + e.Kind.String()
	}
	return fmt.Sprintf("paserk: %s: %s", e.Kind, e.Detail)
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, &Error{Kind: InvalidSignature}) style checks
// that ignore Detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errorf(k Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: k, Detail: fmt.Sprintf(format, a...)}
}
