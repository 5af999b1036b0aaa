// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shamir-mnemonic.

package rs1024

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []uint16
	}{
		{"all zeros", make([]uint16, 17)},
		{"short", []uint16{1, 2, 3}},
		{"max symbols", []uint16{1023, 1023, 1023, 1023}},
		{"mixed", []uint16{0, 513, 77, 1000, 4, 4, 256}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checksum := Checksum(tt.data)
			require.Len(t, checksum, ChecksumLengthWords)
			full := append(append([]uint16{}, tt.data...), checksum...)
			assert.NoError(t, Verify(full))
		})
	}
}

func TestVerifyRejectsCorruption(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]uint16, 20)
	for i := range data {
		data[i] = uint16(rng.Intn(1024))
	}
	full := append(data, Checksum(data)...)
	require.NoError(t, Verify(full))

	// Every single-symbol substitution must be detected.
	for i := range full {
		for delta := 1; delta < 1024; delta += 89 {
			corrupted := append([]uint16{}, full...)
			corrupted[i] = uint16((int(corrupted[i]) + delta) % 1024)
			assert.ErrorIs(t, Verify(corrupted), ErrInvalidChecksum,
				"substitution at symbol %d (+%d) not detected", i, delta)
		}
	}
}

func TestVerifyRejectsSwappedSymbols(t *testing.T) {
	data := []uint16{10, 20, 30, 40, 50, 60}
	full := append(data, Checksum(data)...)
	require.NoError(t, Verify(full))

	swapped := append([]uint16{}, full...)
	swapped[1], swapped[2] = swapped[2], swapped[1]
	assert.ErrorIs(t, Verify(swapped), ErrInvalidChecksum)
}

func TestVerifyTooShort(t *testing.T) {
	assert.ErrorIs(t, Verify(nil), ErrInvalidChecksum)
	assert.ErrorIs(t, Verify([]uint16{1}), ErrInvalidChecksum)
}

func TestChecksumDependsOnData(t *testing.T) {
	a := Checksum([]uint16{1, 2, 3})
	b := Checksum([]uint16{1, 2, 4})
	assert.NotEqual(t, a, b)
}
