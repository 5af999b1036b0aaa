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

// Package share defines the durable unit exchanged between people: one
// fragment of a split master secret together with the hierarchy metadata
// needed to recombine it, and its mnemonic word encoding.
//
// A mnemonic consists of 4 header words (identifier, iteration exponent,
// group and member fields), the bit-padded fragment value, and 3 checksum
// words. The first GroupPrefixLengthWords words depend only on the share
// set and the group index, so they serve as a human-comparable label for a
// group without revealing secret material.
package share

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/rs1024"
	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/wordlist"
)

const (
	radixBits              = wordlist.RadixBits
	idLengthBits           = 15
	iterationExpLengthBits = 5
	idExpLengthWords       = 2
	checksumLengthWords    = rs1024.ChecksumLengthWords

	// metadataLengthWords counts the non-value words of a mnemonic:
	// 2 identifier/exponent words, 2 group/member words, 3 checksum words.
	metadataLengthWords = idExpLengthWords + 2 + checksumLengthWords

	// MinStrengthBits is the minimum master secret entropy.
	MinStrengthBits = 128

	// MinMnemonicLengthWords is the shortest valid mnemonic, carrying a
	// value of MinStrengthBits bits.
	MinMnemonicLengthWords = metadataLengthWords + (MinStrengthBits+radixBits-1)/radixBits

	// MaxShareCount bounds group and member counts, fixed by the 4-bit
	// index fields.
	MaxShareCount = 16

	// GroupPrefixLengthWords is the number of leading mnemonic words that
	// identify the share set and group without depending on member fields.
	GroupPrefixLengthWords = idExpLengthWords + 1

	// MaxIdentifier is the largest encodable share set identifier.
	MaxIdentifier = (1 << idLengthBits) - 1

	// MaxIterationExponent is the largest encodable iteration exponent.
	MaxIterationExponent = (1 << iterationExpLengthBits) - 1
)

var (
	// ErrInvalidWordCount is returned when a mnemonic has too few words or
	// a word count that no valid value length produces.
	ErrInvalidWordCount = errors.New("share: invalid number of mnemonic words")

	// ErrInvalidThreshold is returned when the decoded group threshold
	// exceeds the group count.
	ErrInvalidThreshold = errors.New("share: group threshold cannot exceed group count")
)

// Share is one fragment of a split master secret in its transcribable
// form. Thresholds and counts hold the actual values (1-16); the codec
// stores them off by one to fit 4 bits.
type Share struct {
	Identifier        uint16
	IterationExponent uint8
	GroupIndex        uint8
	GroupThreshold    uint8
	GroupCount        uint8
	MemberIndex       uint8
	MemberThreshold   uint8
	Value             []byte
}

// CommonParameters are the fields every share of one recovery attempt
// must agree on.
type CommonParameters struct {
	Identifier        uint16
	IterationExponent uint8
	GroupThreshold    uint8
	GroupCount        uint8
}

// CommonParameters extracts the set-wide parameters of the share.
func (s *Share) CommonParameters() CommonParameters {
	return CommonParameters{
		Identifier:        s.Identifier,
		IterationExponent: s.IterationExponent,
		GroupThreshold:    s.GroupThreshold,
		GroupCount:        s.GroupCount,
	}
}

// Equal compares two shares structurally, field by field including the
// member index and value, so shares that differ only in payload are never
// considered the same.
func (s *Share) Equal(other *Share) bool {
	return s.Identifier == other.Identifier &&
		s.IterationExponent == other.IterationExponent &&
		s.GroupIndex == other.GroupIndex &&
		s.GroupThreshold == other.GroupThreshold &&
		s.GroupCount == other.GroupCount &&
		s.MemberIndex == other.MemberIndex &&
		s.MemberThreshold == other.MemberThreshold &&
		bytes.Equal(s.Value, other.Value)
}

func (s *Share) validate() error {
	if s.Identifier > MaxIdentifier {
		return fmt.Errorf("share: identifier %d exceeds %d bits", s.Identifier, idLengthBits)
	}
	if s.IterationExponent > MaxIterationExponent {
		return fmt.Errorf("share: iteration exponent %d exceeds the maximum of %d", s.IterationExponent, MaxIterationExponent)
	}
	if s.GroupCount < 1 || s.GroupCount > MaxShareCount {
		return fmt.Errorf("share: group count %d out of range 1-%d", s.GroupCount, MaxShareCount)
	}
	if s.GroupThreshold < 1 || s.GroupThreshold > s.GroupCount {
		return fmt.Errorf("share: group threshold %d out of range 1-%d", s.GroupThreshold, s.GroupCount)
	}
	if s.GroupIndex >= s.GroupCount {
		return fmt.Errorf("share: group index %d out of range for %d groups", s.GroupIndex, s.GroupCount)
	}
	if s.MemberThreshold < 1 || s.MemberThreshold > MaxShareCount {
		return fmt.Errorf("share: member threshold %d out of range 1-%d", s.MemberThreshold, MaxShareCount)
	}
	if s.MemberIndex >= MaxShareCount {
		return fmt.Errorf("share: member index %d out of range", s.MemberIndex)
	}
	if len(s.Value)*8 < MinStrengthBits || len(s.Value)%2 != 0 {
		return fmt.Errorf("share: value must be an even number of bytes, at least %d bits", MinStrengthBits)
	}
	return nil
}

// wordIndices encodes the share fields and value into 10-bit symbols,
// checksum included.
func (s *Share) wordIndices() ([]uint16, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	idExp := uint32(s.Identifier)<<iterationExpLengthBits | uint32(s.IterationExponent)
	meta := uint32(s.GroupIndex)<<16 |
		uint32(s.GroupThreshold-1)<<12 |
		uint32(s.GroupCount-1)<<8 |
		uint32(s.MemberIndex)<<4 |
		uint32(s.MemberThreshold-1)

	valueIndices := wordlist.IndicesFromBytes(s.Value)
	indices := make([]uint16, 0, 4+len(valueIndices)+checksumLengthWords)
	indices = append(indices,
		uint16(idExp>>radixBits), uint16(idExp&(wordlist.Count-1)),
		uint16(meta>>radixBits), uint16(meta&(wordlist.Count-1)),
	)
	indices = append(indices, valueIndices...)
	indices = append(indices, rs1024.Checksum(indices)...)
	return indices, nil
}

// Words encodes the share as its mnemonic word sequence.
func (s *Share) Words() ([]string, error) {
	indices, err := s.wordIndices()
	if err != nil {
		return nil, err
	}
	return wordlist.English().WordsAt(indices)
}

// Mnemonic encodes the share as a single space-separated mnemonic string.
func (s *Share) Mnemonic() (string, error) {
	words, err := s.Words()
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// GroupPrefix returns the leading mnemonic words the share set would use
// for the given group index. All shares of that group start with these
// words.
func (s *Share) GroupPrefix(groupIndex uint8) (string, error) {
	prefixed := *s
	prefixed.GroupIndex = groupIndex
	words, err := prefixed.Words()
	if err != nil {
		return "", err
	}
	return strings.Join(words[:GroupPrefixLengthWords], " "), nil
}

// FromMnemonic decodes and validates a mnemonic string. Nothing about the
// share is trusted before the word count, vocabulary, checksum, and
// padding checks all pass.
func FromMnemonic(mnemonic string) (*Share, error) {
	words := strings.Fields(strings.ToLower(mnemonic))
	if len(words) < MinMnemonicLengthWords {
		return nil, fmt.Errorf("%w: at least %d words are required", ErrInvalidWordCount, MinMnemonicLengthWords)
	}

	indices, err := wordlist.English().Indices(words)
	if err != nil {
		return nil, err
	}

	paddingBits := (radixBits * (len(indices) - metadataLengthWords)) % 16
	if paddingBits > 8 {
		return nil, fmt.Errorf("%w: %d words do not encode a whole number of bytes", ErrInvalidWordCount, len(words))
	}

	if err := rs1024.Verify(indices); err != nil {
		return nil, err
	}

	idExp := uint32(indices[0])<<radixBits | uint32(indices[1])
	meta := uint32(indices[2])<<radixBits | uint32(indices[3])

	share := &Share{
		Identifier:        uint16(idExp >> iterationExpLengthBits),
		IterationExponent: uint8(idExp & (1<<iterationExpLengthBits - 1)),
		GroupIndex:        uint8(meta >> 16 & 0xF),
		GroupThreshold:    uint8(meta>>12&0xF) + 1,
		GroupCount:        uint8(meta>>8&0xF) + 1,
		MemberIndex:       uint8(meta >> 4 & 0xF),
		MemberThreshold:   uint8(meta&0xF) + 1,
	}
	if share.GroupCount < share.GroupThreshold {
		return nil, fmt.Errorf("%w: threshold %d, count %d", ErrInvalidThreshold, share.GroupThreshold, share.GroupCount)
	}

	valueIndices := indices[idExpLengthWords+2 : len(indices)-checksumLengthWords]
	byteCount := (radixBits*len(valueIndices) - paddingBits) / 8
	value, err := wordlist.BytesFromIndices(valueIndices, byteCount)
	if err != nil {
		return nil, err
	}
	share.Value = value
	return share, nil
}
