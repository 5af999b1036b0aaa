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

// Package mnemonic orchestrates the two-level split and combine of a
// master secret.
//
// Generate encrypts the secret under the passphrase cipher, splits the
// result across groups, splits every group fragment across that group's
// members, and encodes each member fragment as a mnemonic. Combine runs
// the same pipeline backwards from any sufficient subset of mnemonics.
package mnemonic

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sort"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/feistel"
	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/shamir"
	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/share"
)

var (
	// ErrEmptyMnemonics is returned when Combine receives no mnemonics.
	ErrEmptyMnemonics = errors.New("mnemonic: the list of mnemonics is empty")

	// ErrMnemonicSetMismatch is returned when mnemonics do not agree on
	// the set-wide parameters or on a group's member threshold.
	ErrMnemonicSetMismatch = errors.New("mnemonic: mnemonics do not belong to the same share set")

	// ErrConflictingShares is returned when two different shares claim the
	// same group and member index. Conflicts are rejected outright rather
	// than carried into recombination.
	ErrConflictingShares = errors.New("mnemonic: conflicting shares for the same member index")

	// ErrNotEnoughGroups is returned when fewer groups than the group
	// threshold hold enough shares.
	ErrNotEnoughGroups = errors.New("mnemonic: not enough complete share groups")
)

// Group describes one group of a split scheme: MemberThreshold of
// MemberCount shares reconstruct the group fragment.
type Group struct {
	MemberThreshold int
	MemberCount     int
}

// Generate splits masterSecret into mnemonics, one list per requested
// group, in input order. groupThreshold of the groups are needed to
// recover, and within each group its own member threshold applies.
//
// The scheme shape is validated before any cryptography runs. Groups of
// the form 1-of-n with n > 1 are rejected: identical copies defeat the
// purpose of splitting, so callers must use a 1-of-1 group and distribute
// copies deliberately.
func Generate(groupThreshold int, groups []Group, masterSecret, passphrase []byte, iterationExponent uint8) ([][]string, error) {
	if len(masterSecret)*8 < share.MinStrengthBits {
		return nil, fmt.Errorf("mnemonic: master secret must be at least %d bits", share.MinStrengthBits)
	}
	if len(masterSecret)%2 != 0 {
		return nil, feistel.ErrInvalidSecretLength
	}
	if err := feistel.CheckPassphrase(passphrase); err != nil {
		return nil, err
	}
	if groupThreshold < 1 {
		return nil, fmt.Errorf("mnemonic: group threshold must be a positive integer, got %d", groupThreshold)
	}
	if groupThreshold > len(groups) {
		return nil, fmt.Errorf("mnemonic: group threshold %d cannot exceed the number of groups %d", groupThreshold, len(groups))
	}
	if len(groups) > share.MaxShareCount {
		return nil, fmt.Errorf("mnemonic: number of groups %d exceeds the maximum of %d", len(groups), share.MaxShareCount)
	}
	for i, g := range groups {
		if g.MemberThreshold < 1 || g.MemberThreshold > g.MemberCount {
			return nil, fmt.Errorf("mnemonic: group %d: member threshold %d out of range 1-%d", i, g.MemberThreshold, g.MemberCount)
		}
		if g.MemberCount > share.MaxShareCount {
			return nil, fmt.Errorf("mnemonic: group %d: member count %d exceeds the maximum of %d", i, g.MemberCount, share.MaxShareCount)
		}
		if g.MemberThreshold == 1 && g.MemberCount > 1 {
			return nil, fmt.Errorf("mnemonic: group %d: a 1-of-%d group is not allowed; use a 1-of-1 group and distribute copies", i, g.MemberCount)
		}
	}

	identifier, err := randomIdentifier()
	if err != nil {
		return nil, err
	}

	encrypted, err := feistel.Encrypt(masterSecret, passphrase, iterationExponent, identifier)
	if err != nil {
		return nil, err
	}

	groupFragments, err := shamir.Split(groupThreshold, len(groups), encrypted)
	if err != nil {
		return nil, err
	}

	mnemonics := make([][]string, len(groups))
	for i, g := range groups {
		memberFragments, err := shamir.Split(g.MemberThreshold, g.MemberCount, groupFragments[i].Value)
		if err != nil {
			return nil, err
		}
		mnemonics[i] = make([]string, len(memberFragments))
		for j, fragment := range memberFragments {
			memberShare := &share.Share{
				Identifier:        identifier,
				IterationExponent: iterationExponent,
				GroupIndex:        uint8(i),
				GroupThreshold:    uint8(groupThreshold),
				GroupCount:        uint8(len(groups)),
				MemberIndex:       fragment.Index,
				MemberThreshold:   uint8(g.MemberThreshold),
				Value:             fragment.Value,
			}
			mnemonics[i][j], err = memberShare.Mnemonic()
			if err != nil {
				return nil, err
			}
		}
	}
	return mnemonics, nil
}

// Combine reconstructs the master secret from a sufficient subset of
// mnemonics.
//
// Every mnemonic must decode and agree on the common parameters. Each
// group holding at least its member threshold of distinct shares is
// recombined; at least the group threshold of groups must be complete.
// Shares beyond a threshold are prefiltered deterministically by lowest
// index, so any sufficient subset reconstructs.
func Combine(mnemonics []string, passphrase []byte) ([]byte, error) {
	if len(mnemonics) == 0 {
		return nil, ErrEmptyMnemonics
	}

	groups := make(map[uint8][]*share.Share)
	var params share.CommonParameters
	for i, m := range mnemonics {
		decoded, err := share.FromMnemonic(m)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			params = decoded.CommonParameters()
		} else if decoded.CommonParameters() != params {
			return nil, fmt.Errorf("%w: all mnemonics must begin with the same words", ErrMnemonicSetMismatch)
		}

		duplicate := false
		for _, existing := range groups[decoded.GroupIndex] {
			if existing.Equal(decoded) {
				duplicate = true
				break
			}
			if existing.MemberThreshold != decoded.MemberThreshold {
				return nil, fmt.Errorf("%w: mnemonics in group %d disagree on the member threshold", ErrMnemonicSetMismatch, decoded.GroupIndex)
			}
			if existing.MemberIndex == decoded.MemberIndex {
				return nil, fmt.Errorf("%w: group %d member %d", ErrConflictingShares, decoded.GroupIndex, decoded.MemberIndex)
			}
		}
		if !duplicate {
			groups[decoded.GroupIndex] = append(groups[decoded.GroupIndex], decoded)
		}
	}

	groupIndices := make([]int, 0, len(groups))
	for index := range groups {
		groupIndices = append(groupIndices, int(index))
	}
	sort.Ints(groupIndices)

	var groupFragments []shamir.Fragment
	for _, index := range groupIndices {
		members := groups[uint8(index)]
		need := int(members[0].MemberThreshold)
		if len(members) < need {
			continue
		}
		sort.Slice(members, func(a, b int) bool {
			return members[a].MemberIndex < members[b].MemberIndex
		})
		fragments := make([]shamir.Fragment, need)
		for i, member := range members[:need] {
			fragments[i] = shamir.Fragment{Index: member.MemberIndex, Value: member.Value}
		}
		groupSecret, err := shamir.Recover(need, fragments)
		if err != nil {
			return nil, err
		}
		groupFragments = append(groupFragments, shamir.Fragment{Index: uint8(index), Value: groupSecret})
	}

	groupThreshold := int(params.GroupThreshold)
	if len(groupFragments) < groupThreshold {
		return nil, fmt.Errorf("%w: %d of the required %d groups are complete", ErrNotEnoughGroups, len(groupFragments), groupThreshold)
	}

	encrypted, err := shamir.Recover(groupThreshold, groupFragments[:groupThreshold])
	if err != nil {
		return nil, err
	}
	return feistel.Decrypt(encrypted, passphrase, params.IterationExponent, params.Identifier)
}

// randomIdentifier draws a fresh 15-bit share set identifier.
func randomIdentifier() (uint16, error) {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("mnemonic: reading random identifier: %w", err)
	}
	return uint16(buf[0])&0x7F<<8 | uint16(buf[1]), nil
}
