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

// Package wordlist provides the 1024-word mnemonic vocabulary and the
// bidirectional mapping between byte payloads and sequences of 10-bit
// word symbols.
//
// The English vocabulary is embedded at build time and loaded exactly once
// into an immutable Wordlist value during package initialization. Words are
// lowercase, sorted, 4-8 letters long, and have pairwise distinct 4-letter
// prefixes so shares can be transcribed from truncated words.
package wordlist

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

const (
	// RadixBits is the number of payload bits carried by one word.
	RadixBits = 10

	// Count is the required vocabulary size, 2^RadixBits.
	Count = 1 << RadixBits
)

var (
	// ErrUnknownWord is returned when a token is not part of the vocabulary.
	ErrUnknownWord = errors.New("wordlist: word not in vocabulary")

	// ErrInvalidPadding is returned when the zero-padding bits of an encoded
	// payload are not zero.
	ErrInvalidPadding = errors.New("wordlist: padding bits must be zero")
)

//go:embed words_en.txt
var englishData string

var english = mustLoad(englishData)

// Wordlist is an immutable word vocabulary with constant-time lookups in
// both directions.
type Wordlist struct {
	words   []string
	indices map[string]uint16
}

// English returns the embedded English vocabulary, built once at process
// initialization.
func English() *Wordlist {
	return english
}

// New builds a Wordlist from newline-separated words. The data must contain
// exactly Count distinct words.
func New(data string) (*Wordlist, error) {
	words := strings.Fields(data)
	if len(words) != Count {
		return nil, fmt.Errorf("wordlist: expected %d words, got %d", Count, len(words))
	}
	wl := &Wordlist{
		words:   words,
		indices: make(map[string]uint16, Count),
	}
	for i, word := range words {
		if _, exists := wl.indices[word]; exists {
			return nil, fmt.Errorf("wordlist: duplicate word %q", word)
		}
		wl.indices[word] = uint16(i)
	}
	return wl, nil
}

func mustLoad(data string) *Wordlist {
	wl, err := New(data)
	if err != nil {
		panic(err)
	}
	return wl
}

// Word returns the word at the given symbol index.
func (wl *Wordlist) Word(index uint16) (string, error) {
	if int(index) >= len(wl.words) {
		return "", fmt.Errorf("wordlist: symbol index %d out of range", index)
	}
	return wl.words[index], nil
}

// Index returns the symbol index of word, failing with ErrUnknownWord if
// the word is not part of the vocabulary.
func (wl *Wordlist) Index(word string) (uint16, error) {
	index, ok := wl.indices[word]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return index, nil
}

// Indices maps a word sequence to its symbol indices.
func (wl *Wordlist) Indices(words []string) ([]uint16, error) {
	indices := make([]uint16, len(words))
	for i, word := range words {
		index, err := wl.Index(word)
		if err != nil {
			return nil, err
		}
		indices[i] = index
	}
	return indices, nil
}

// WordsAt maps symbol indices back to words.
func (wl *Wordlist) WordsAt(indices []uint16) ([]string, error) {
	words := make([]string, len(indices))
	for i, index := range indices {
		word, err := wl.Word(index)
		if err != nil {
			return nil, err
		}
		words[i] = word
	}
	return words, nil
}

// Words returns a copy of the vocabulary in symbol order.
func (wl *Wordlist) Words() []string {
	words := make([]string, len(wl.words))
	copy(words, wl.words)
	return words
}

// IndicesFromBytes packs a byte payload into 10-bit symbols, most
// significant symbol first, zero-padding the integer on the left to a
// whole number of symbols.
func IndicesFromBytes(b []byte) []uint16 {
	wordCount := (8*len(b) + RadixBits - 1) / RadixBits
	indices := make([]uint16, wordCount)
	var acc uint32
	bits := 0
	pos := wordCount - 1
	for i := len(b) - 1; i >= 0; i-- {
		acc |= uint32(b[i]) << bits
		bits += 8
		for bits >= RadixBits {
			indices[pos] = uint16(acc & (Count - 1))
			acc >>= RadixBits
			bits -= RadixBits
			pos--
		}
	}
	if bits > 0 {
		indices[pos] = uint16(acc)
	}
	return indices
}

// BytesFromIndices unpacks 10-bit symbols into a payload of byteCount
// bytes. The symbols may carry at most RadixBits-1 bits of leading zero
// padding beyond the payload; nonzero padding fails with ErrInvalidPadding.
func BytesFromIndices(indices []uint16, byteCount int) ([]byte, error) {
	padding := RadixBits*len(indices) - 8*byteCount
	if byteCount < 0 || padding < 0 || padding >= RadixBits {
		return nil, fmt.Errorf("wordlist: %d symbols cannot hold %d bytes", len(indices), byteCount)
	}
	out := make([]byte, byteCount)
	var acc uint32
	bits := 0
	pos := byteCount - 1
	for i := len(indices) - 1; i >= 0; i-- {
		acc |= uint32(indices[i]) << bits
		bits += RadixBits
		for bits >= 8 && pos >= 0 {
			out[pos] = byte(acc)
			acc >>= 8
			bits -= 8
			pos--
		}
	}
	if acc != 0 {
		return nil, ErrInvalidPadding
	}
	return out, nil
}
