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

// Package feistel implements the reversible passphrase encryption applied
// to a master secret before it is split into shares.
//
// The cipher is a 4-round Feistel network over the two halves of the
// secret. The round function is PBKDF2-HMAC-SHA256 keyed with the round
// number and the passphrase, salted with a fixed customization string, the
// share set identifier, and the opposite half. The iteration exponent
// scales the PBKDF2 cost, stretching the passphrase against brute force.
//
// Binding the salt to the identifier means the same passphrase decrypts to
// a different value under a different identifier; a wrong passphrase (or
// wrong identifier) yields a wrong secret, never an error. The empty
// passphrase is a normal input, so encryption is always applied.
package feistel

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// MaxIterationExponent bounds the key-stretching exponent to what the
	// share encoding can carry.
	MaxIterationExponent = 31

	roundCount            = 4
	baseIterationCount    = 10000
	customizationString   = "shamir"
	identifierLengthBytes = 2
)

var (
	// ErrInvalidSecretLength is returned when the master secret does not
	// consist of an even number of bytes.
	ErrInvalidSecretLength = errors.New("feistel: master secret length must be an even number of bytes")

	// ErrInvalidPassphraseEncoding is returned when the passphrase
	// contains bytes outside printable ASCII.
	ErrInvalidPassphraseEncoding = errors.New("feistel: passphrase must contain only printable ASCII characters")
)

// Encrypt applies the Feistel network forward, producing the encrypted
// master secret that gets Shamir-split.
func Encrypt(masterSecret, passphrase []byte, iterationExponent uint8, identifier uint16) ([]byte, error) {
	if err := validate(masterSecret, passphrase, iterationExponent); err != nil {
		return nil, err
	}
	half := len(masterSecret) / 2
	left := clone(masterSecret[:half])
	right := clone(masterSecret[half:])
	salt := buildSalt(identifier)
	for round := 0; round < roundCount; round++ {
		left, right = right, xorBytes(left, roundFunction(byte(round), passphrase, iterationExponent, salt, right))
	}
	return append(right, left...), nil
}

// Decrypt inverts Encrypt by running the rounds in reverse order with the
// same half swap.
func Decrypt(encryptedMasterSecret, passphrase []byte, iterationExponent uint8, identifier uint16) ([]byte, error) {
	if err := validate(encryptedMasterSecret, passphrase, iterationExponent); err != nil {
		return nil, err
	}
	half := len(encryptedMasterSecret) / 2
	left := clone(encryptedMasterSecret[:half])
	right := clone(encryptedMasterSecret[half:])
	salt := buildSalt(identifier)
	for round := roundCount - 1; round >= 0; round-- {
		left, right = right, xorBytes(left, roundFunction(byte(round), passphrase, iterationExponent, salt, right))
	}
	return append(right, left...), nil
}

// CheckPassphrase reports whether the passphrase is valid input for the
// cipher: printable ASCII only, empty allowed.
func CheckPassphrase(passphrase []byte) error {
	for _, c := range passphrase {
		if c < 32 || c > 126 {
			return ErrInvalidPassphraseEncoding
		}
	}
	return nil
}

func validate(secret, passphrase []byte, iterationExponent uint8) error {
	if len(secret)%2 != 0 {
		return ErrInvalidSecretLength
	}
	if iterationExponent > MaxIterationExponent {
		return fmt.Errorf("feistel: iteration exponent %d exceeds the maximum of %d", iterationExponent, MaxIterationExponent)
	}
	return CheckPassphrase(passphrase)
}

// roundFunction derives the Feistel round output for one half via PBKDF2.
func roundFunction(round byte, passphrase []byte, iterationExponent uint8, salt, half []byte) []byte {
	iterations := (baseIterationCount << iterationExponent) / roundCount
	key := make([]byte, 0, 1+len(passphrase))
	key = append(key, round)
	key = append(key, passphrase...)
	fullSalt := make([]byte, 0, len(salt)+len(half))
	fullSalt = append(fullSalt, salt...)
	fullSalt = append(fullSalt, half...)
	return pbkdf2.Key(key, fullSalt, iterations, len(half), sha256.New)
}

// buildSalt binds the cipher to the share set identifier.
func buildSalt(identifier uint16) []byte {
	salt := make([]byte, 0, len(customizationString)+identifierLengthBytes)
	salt = append(salt, customizationString...)
	salt = append(salt, byte(identifier>>8), byte(identifier))
	return salt
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
