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

// Package gf256 implements arithmetic over the finite field GF(256) defined
// by the irreducible polynomial x^8 + x^4 + x^3 + x + 1 (0x11B).
//
// Multiplication and division use discrete logarithm and exponentiation
// tables precomputed once at package initialization from the generator 0x03.
// All operations are side-effect free and total on 0-255, with the single
// exception of division by zero.
package gf256

import "errors"

// ErrDivisionByZero is returned when the divisor of Div is zero.
var ErrDivisionByZero = errors.New("gf256: division by zero")

// Precomputed logarithm and exponentiation tables. Immutable after init.
var (
	expTable [256]byte
	logTable [256]byte
)

func init() {
	var x byte = 1
	for i := 0; i < 255; i++ {
		expTable[i] = x
		logTable[x] = byte(i)
		x = multiply(x, 0x03)
	}
	expTable[255] = expTable[0]
}

// multiply performs multiplication in GF(256) using the peasant algorithm.
// Used only during table initialization.
func multiply(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		highBit := a & 0x80
		a <<= 1
		if highBit != 0 {
			a ^= 0x1B
		}
		b >>= 1
	}
	return p
}

// Add performs addition in GF(256), which is XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub performs subtraction in GF(256), which is also XOR.
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul performs multiplication in GF(256). Either operand being zero
// yields zero.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[(int(logTable[a])+int(logTable[b]))%255]
}

// Div performs division in GF(256). Dividing by zero fails with
// ErrDivisionByZero; dividing zero by anything else yields zero.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	return expTable[(int(logTable[a])-int(logTable[b])+255)%255], nil
}
