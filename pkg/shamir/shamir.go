// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shamir-mnemonic.
//
// go-shamir-mnemonic is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package shamir implements Shamir's Secret Sharing over GF(256) with an
// integrity digest.
//
// A secret is split into fragments that are points of a random polynomial
// of degree threshold-1, evaluated independently for every byte position.
// Two x-coordinates are reserved: the secret itself sits at index 255 and
// a digest fragment sits at index 254. The digest fragment carries a
// 4-byte HMAC-SHA256 of the secret keyed with a random salt that fills the
// rest of the fragment, letting Recover detect fragments that do not
// belong to the same split without revealing anything about the secret.
package shamir

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/gf256"
)

const (
	// MaxShareCount is the maximum number of fragments one split can
	// produce, bounded by the 4-bit index fields of the share encoding.
	MaxShareCount = 16

	// DigestIndex is the reserved x-coordinate of the digest fragment.
	DigestIndex = 254

	// SecretIndex is the reserved x-coordinate of the secret itself.
	SecretIndex = 255

	// DigestLengthBytes is the length of the truncated integrity digest.
	DigestLengthBytes = 4
)

var (
	// ErrNotEnoughShares is returned when fewer distinct fragments than
	// the threshold are supplied to Recover.
	ErrNotEnoughShares = errors.New("shamir: not enough shares to reconstruct the secret")

	// ErrTooManyShares is returned when more fragments than the threshold
	// are supplied; callers must prefilter to exactly threshold fragments.
	ErrTooManyShares = errors.New("shamir: more shares supplied than the threshold requires")

	// ErrDigestMismatch is returned when the recovered digest fragment
	// does not authenticate the recovered secret, meaning the supplied
	// fragments do not all originate from the same split.
	ErrDigestMismatch = errors.New("shamir: invalid digest of the shared secret")

	// ErrDuplicateIndex is returned when two fragments share an
	// x-coordinate.
	ErrDuplicateIndex = errors.New("shamir: share indices must be unique")

	// ErrValueLengthMismatch is returned when fragment values differ in
	// length.
	ErrValueLengthMismatch = errors.New("shamir: all share values must have the same length")
)

// Fragment is one (x, y) point of the sharing polynomial. The value has
// the same length as the secret being shared.
type Fragment struct {
	Index byte
	Value []byte
}

// Interpolate evaluates at x the unique polynomial of degree
// len(fragments)-1 passing through all supplied fragments, independently
// for every byte position, using Lagrange's formula. If x matches one of
// the fragment indices its value is returned directly.
func Interpolate(fragments []Fragment, x byte) ([]byte, error) {
	if len(fragments) == 0 {
		return nil, ErrNotEnoughShares
	}
	valueLen := len(fragments[0].Value)
	seen := make(map[byte]bool, len(fragments))
	for _, f := range fragments {
		if seen[f.Index] {
			return nil, ErrDuplicateIndex
		}
		seen[f.Index] = true
		if len(f.Value) != valueLen {
			return nil, ErrValueLengthMismatch
		}
	}

	if seen[x] {
		for _, f := range fragments {
			if f.Index == x {
				value := make([]byte, valueLen)
				copy(value, f.Value)
				return value, nil
			}
		}
	}

	result := make([]byte, valueLen)
	for i, f := range fragments {
		// Lagrange basis l_i(x) = prod_{j != i} (x - x_j) / (x_i - x_j).
		numerator := byte(1)
		denominator := byte(1)
		for j, other := range fragments {
			if i == j {
				continue
			}
			numerator = gf256.Mul(numerator, gf256.Sub(x, other.Index))
			denominator = gf256.Mul(denominator, gf256.Sub(f.Index, other.Index))
		}
		basis, err := gf256.Div(numerator, denominator)
		if err != nil {
			return nil, err
		}
		for k := range result {
			result[k] = gf256.Add(result[k], gf256.Mul(f.Value[k], basis))
		}
	}
	return result, nil
}

// Split divides secret into shareCount fragments of which any threshold
// reconstruct it.
//
// With threshold 1 every fragment is a verbatim copy of the secret. With a
// higher threshold, threshold-2 fragments are drawn at random and the
// digest fragment at index 254 together with the secret at index 255
// complete the interpolation basis; all remaining fragments are
// evaluations of the resulting polynomial.
func Split(threshold, shareCount int, secret []byte) ([]Fragment, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("shamir: threshold must be a positive integer, got %d", threshold)
	}
	if threshold > shareCount {
		return nil, fmt.Errorf("shamir: threshold %d cannot exceed the share count %d", threshold, shareCount)
	}
	if shareCount > MaxShareCount {
		return nil, fmt.Errorf("shamir: share count %d exceeds the maximum of %d", shareCount, MaxShareCount)
	}

	if threshold == 1 {
		fragments := make([]Fragment, shareCount)
		for i := range fragments {
			value := make([]byte, len(secret))
			copy(value, secret)
			fragments[i] = Fragment{Index: byte(i), Value: value}
		}
		return fragments, nil
	}

	if len(secret) <= DigestLengthBytes {
		return nil, fmt.Errorf("shamir: secret must be longer than %d bytes", DigestLengthBytes)
	}

	randomCount := threshold - 2
	fragments := make([]Fragment, 0, shareCount)
	for i := 0; i < randomCount; i++ {
		value := make([]byte, len(secret))
		if _, err := rand.Read(value); err != nil {
			return nil, fmt.Errorf("shamir: reading random fragment: %w", err)
		}
		fragments = append(fragments, Fragment{Index: byte(i), Value: value})
	}

	salt := make([]byte, len(secret)-DigestLengthBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("shamir: reading digest salt: %w", err)
	}
	digestValue := append(digest(salt, secret), salt...)

	secretValue := make([]byte, len(secret))
	copy(secretValue, secret)

	basis := make([]Fragment, 0, threshold)
	basis = append(basis, fragments...)
	basis = append(basis,
		Fragment{Index: DigestIndex, Value: digestValue},
		Fragment{Index: SecretIndex, Value: secretValue},
	)

	for i := randomCount; i < shareCount; i++ {
		value, err := Interpolate(basis, byte(i))
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, Fragment{Index: byte(i), Value: value})
	}
	return fragments, nil
}

// Recover reconstructs the secret from exactly threshold fragments with
// distinct indices. The recovered digest fragment must authenticate the
// recovered secret; otherwise Recover fails with ErrDigestMismatch.
func Recover(threshold int, fragments []Fragment) ([]byte, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("shamir: threshold must be a positive integer, got %d", threshold)
	}
	if len(fragments) == 0 {
		return nil, ErrNotEnoughShares
	}

	if threshold == 1 {
		value := make([]byte, len(fragments[0].Value))
		copy(value, fragments[0].Value)
		return value, nil
	}

	distinct := make(map[byte]bool, len(fragments))
	for _, f := range fragments {
		distinct[f.Index] = true
	}
	if len(distinct) < threshold {
		return nil, ErrNotEnoughShares
	}
	if len(fragments) > threshold {
		return nil, ErrTooManyShares
	}

	secret, err := Interpolate(fragments, SecretIndex)
	if err != nil {
		return nil, err
	}
	digestValue, err := Interpolate(fragments, DigestIndex)
	if err != nil {
		return nil, err
	}
	if len(digestValue) <= DigestLengthBytes {
		return nil, ErrValueLengthMismatch
	}

	stored := digestValue[:DigestLengthBytes]
	salt := digestValue[DigestLengthBytes:]
	if !hmac.Equal(stored, digest(salt, secret)) {
		return nil, ErrDigestMismatch
	}
	return secret, nil
}

// digest computes the truncated HMAC-SHA256 of secret keyed with salt.
func digest(salt, secret []byte) []byte {
	mac := hmac.New(sha256.New, salt)
	mac.Write(secret)
	return mac.Sum(nil)[:DigestLengthBytes]
}
