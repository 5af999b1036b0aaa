// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shamir-mnemonic.

package wordlist

import (
	"bytes"
	"crypto/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnglishVocabulary verifies the structural contract of the embedded
// vocabulary: size, ordering, length bounds, and unique 4-letter prefixes.
func TestEnglishVocabulary(t *testing.T) {
	words := English().Words()
	require.Len(t, words, Count)
	assert.True(t, sort.StringsAreSorted(words), "vocabulary must be sorted")

	prefixes := make(map[string]string, Count)
	for _, word := range words {
		assert.Equal(t, strings.ToLower(word), word, "word %q must be lowercase", word)
		require.GreaterOrEqual(t, len(word), 4, "word %q too short", word)
		require.LessOrEqual(t, len(word), 8, "word %q too long", word)
		prefix := word[:4]
		if prev, dup := prefixes[prefix]; dup {
			t.Fatalf("words %q and %q share the prefix %q", prev, word, prefix)
		}
		prefixes[prefix] = word
	}
}

func TestIndexRoundTrip(t *testing.T) {
	wl := English()
	for i := 0; i < Count; i += 37 {
		word, err := wl.Word(uint16(i))
		require.NoError(t, err)
		index, err := wl.Index(word)
		require.NoError(t, err)
		assert.Equal(t, uint16(i), index)
	}
}

func TestIndexUnknownWord(t *testing.T) {
	_, err := English().Index("notaword")
	assert.ErrorIs(t, err, ErrUnknownWord)

	_, err = English().Indices([]string{"zero", "notaword"})
	assert.ErrorIs(t, err, ErrUnknownWord)
}

func TestWordOutOfRange(t *testing.T) {
	_, err := English().Word(Count)
	assert.Error(t, err)
}

func TestNewRejectsBadData(t *testing.T) {
	_, err := New("only three words here")
	assert.Error(t, err)

	// Right count, but with a duplicate.
	words := English().Words()
	words[1] = words[0]
	_, err = New(strings.Join(words, "\n"))
	assert.Error(t, err)
}

func TestBytePackingKnownVector(t *testing.T) {
	// 0xABCD = 0b1010101111001101 packs into symbols 42, 973 with 4
	// leading zero-padding bits.
	indices := IndicesFromBytes([]byte{0xAB, 0xCD})
	require.Equal(t, []uint16{42, 973}, indices)

	decoded, err := BytesFromIndices(indices, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xCD}, decoded)
}

func TestBytePackingRoundTrip(t *testing.T) {
	for _, size := range []int{4, 5, 16, 20, 32, 33, 64} {
		payload := make([]byte, size)
		_, err := rand.Read(payload)
		require.NoError(t, err)

		indices := IndicesFromBytes(payload)
		expectedWords := (8*size + RadixBits - 1) / RadixBits
		require.Len(t, indices, expectedWords, "size %d", size)

		decoded, err := BytesFromIndices(indices, size)
		require.NoError(t, err, "size %d", size)
		assert.True(t, bytes.Equal(payload, decoded), "size %d round trip", size)
	}
}

func TestBytesFromIndicesRejectsNonZeroPadding(t *testing.T) {
	indices := IndicesFromBytes([]byte{0xAB, 0xCD})
	// Set one of the 4 padding bits in the most significant symbol.
	indices[0] |= 1 << (RadixBits - 1)
	_, err := BytesFromIndices(indices, 2)
	assert.ErrorIs(t, err, ErrInvalidPadding)
}

func TestBytesFromIndicesRejectsImpossibleLengths(t *testing.T) {
	indices := []uint16{1, 2}
	_, err := BytesFromIndices(indices, 3) // 24 bits > 20 available
	assert.Error(t, err)
	_, err = BytesFromIndices(indices, 1) // 12 bits of padding
	assert.Error(t, err)
	_, err = BytesFromIndices(indices, -1)
	assert.Error(t, err)
}
