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

// Package rs1024 implements a Reed-Solomon style BCH checksum over 10-bit
// symbols in GF(1024).
//
// The checksum detects transcription errors in mnemonic word sequences:
// it is guaranteed to detect any error affecting at most 3 words and has
// a failure probability below 1 in a billion for most other error classes.
// A fixed customization string is mixed into the residue so checksums from
// unrelated encodings never validate here.
package rs1024

import "errors"

// ErrInvalidChecksum is returned when a symbol sequence does not satisfy
// the checksum residue identity.
var ErrInvalidChecksum = errors.New("rs1024: invalid checksum")

// ChecksumLengthWords is the number of 10-bit checksum symbols appended
// to a data sequence.
const ChecksumLengthWords = 3

// customizationString distinguishes this checksum domain from other users
// of the same generator polynomial.
const customizationString = "shamir"

// generator holds the coefficients of the checksum generator polynomial.
var generator = [10]uint32{
	0xE0E040,
	0x1C1C080,
	0x3838100,
	0x7070200,
	0xE0E0009,
	0x1C0C2412,
	0x38086C24,
	0x3090FC48,
	0x21B1F890,
	0x3F3F120,
}

// polymod evaluates the checksum polynomial residue over the customization
// string followed by values.
func polymod(values []uint16) uint32 {
	chk := uint32(1)
	step := func(v uint16) {
		b := chk >> 20
		chk = (chk&0xFFFFF)<<10 ^ uint32(v)
		for i := 0; i < 10; i++ {
			if (b>>i)&1 == 1 {
				chk ^= generator[i]
			}
		}
	}
	for _, c := range []byte(customizationString) {
		step(uint16(c))
	}
	for _, v := range values {
		step(v)
	}
	return chk
}

// Checksum computes the 3 checksum symbols for data such that the full
// sequence data||checksum verifies.
func Checksum(data []uint16) []uint16 {
	values := make([]uint16, len(data), len(data)+ChecksumLengthWords)
	copy(values, data)
	values = append(values, 0, 0, 0)
	residue := polymod(values) ^ 1
	checksum := make([]uint16, ChecksumLengthWords)
	for i := 0; i < ChecksumLengthWords; i++ {
		checksum[ChecksumLengthWords-1-i] = uint16((residue >> (10 * i)) & 1023)
	}
	return checksum
}

// Verify checks a full symbol sequence, including its trailing checksum
// symbols, against the fixed residue target. Any mismatch fails with
// ErrInvalidChecksum.
func Verify(values []uint16) error {
	if len(values) < ChecksumLengthWords || polymod(values) != 1 {
		return ErrInvalidChecksum
	}
	return nil
}
