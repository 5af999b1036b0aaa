// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shamir-mnemonic.

package mnemonic

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/shamir"
	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/share"
)

func randomSecret(t *testing.T, size int) []byte {
	t.Helper()
	secret := make([]byte, size)
	_, err := rand.Read(secret)
	require.NoError(t, err)
	return secret
}

// combinations yields every k-element subset of [0, n).
func combinations(n, k int) [][]int {
	var result [][]int
	indices := make([]int, k)
	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == k {
			subset := make([]int, k)
			copy(subset, indices)
			result = append(result, subset)
			return
		}
		for i := start; i < n; i++ {
			indices[depth] = i
			recurse(i+1, depth+1)
		}
	}
	recurse(0, 0)
	return result
}

func TestSingleGroupRoundTrip(t *testing.T) {
	secret := randomSecret(t, 16)
	mnemonics, err := Generate(1, []Group{{3, 5}}, secret, nil, 0)
	require.NoError(t, err)
	require.Len(t, mnemonics, 1)
	require.Len(t, mnemonics[0], 5)

	// Every 3-of-5 subset reconstructs the secret.
	for _, subset := range combinations(5, 3) {
		picked := make([]string, 0, 3)
		for _, i := range subset {
			picked = append(picked, mnemonics[0][i])
		}
		recovered, err := Combine(picked, nil)
		require.NoError(t, err, "subset %v", subset)
		assert.Equal(t, secret, recovered, "subset %v", subset)
	}

	// Any 2 of 5 must not be enough.
	for _, subset := range combinations(5, 2) {
		picked := make([]string, 0, 2)
		for _, i := range subset {
			picked = append(picked, mnemonics[0][i])
		}
		_, err := Combine(picked, nil)
		assert.ErrorIs(t, err, ErrNotEnoughGroups, "subset %v", subset)
	}
}

func TestAllZeroSecretRoundTrip(t *testing.T) {
	secret := make([]byte, 16)
	mnemonics, err := Generate(1, []Group{{3, 5}}, secret, nil, 0)
	require.NoError(t, err)

	recovered, err := Combine(mnemonics[0][:3], nil)
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)
}

func TestMultiGroupRoundTrip(t *testing.T) {
	secret := randomSecret(t, 32)
	groups := []Group{{3, 5}, {2, 3}, {2, 2}, {1, 1}}
	mnemonics, err := Generate(2, groups, secret, []byte("TREZOR"), 1)
	require.NoError(t, err)
	require.Len(t, mnemonics, 4)
	for i, g := range groups {
		assert.Len(t, mnemonics[i], g.MemberCount)
	}

	tests := []struct {
		name   string
		picked []string
	}{
		{"groups 0 and 1", append(append([]string{}, mnemonics[0][:3]...), mnemonics[1][:2]...)},
		{"groups 1 and 2", append(append([]string{}, mnemonics[1][1:]...), mnemonics[2]...)},
		{"groups 2 and 3", append(append([]string{}, mnemonics[2]...), mnemonics[3]...)},
		{"three complete groups", append(append(append([]string{}, mnemonics[3]...), mnemonics[2]...), mnemonics[0][2:]...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recovered, err := Combine(tt.picked, []byte("TREZOR"))
			require.NoError(t, err)
			assert.Equal(t, secret, recovered)
		})
	}
}

func TestIncompleteGroupsDoNotCount(t *testing.T) {
	secret := randomSecret(t, 16)
	mnemonics, err := Generate(2, []Group{{3, 5}, {2, 3}, {2, 2}}, secret, nil, 0)
	require.NoError(t, err)

	// One complete group plus a partial one stays below the group
	// threshold no matter how many shares the partial group piles up.
	picked := append(append([]string{}, mnemonics[1]...), mnemonics[0][:2]...)
	_, err = Combine(picked, nil)
	assert.ErrorIs(t, err, ErrNotEnoughGroups)
}

func TestSurplusSharesStillReconstruct(t *testing.T) {
	secret := randomSecret(t, 16)
	mnemonics, err := Generate(1, []Group{{3, 5}}, secret, nil, 0)
	require.NoError(t, err)

	// All five shares at once, in scrambled order.
	picked := []string{mnemonics[0][4], mnemonics[0][1], mnemonics[0][3], mnemonics[0][0], mnemonics[0][2]}
	recovered, err := Combine(picked, nil)
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)
}

func TestDuplicateMnemonicsAreIgnored(t *testing.T) {
	secret := randomSecret(t, 16)
	mnemonics, err := Generate(1, []Group{{2, 2}}, secret, nil, 0)
	require.NoError(t, err)

	// A repeated mnemonic never counts twice toward the threshold.
	_, err = Combine([]string{mnemonics[0][0], mnemonics[0][0]}, nil)
	assert.ErrorIs(t, err, ErrNotEnoughGroups)

	recovered, err := Combine([]string{mnemonics[0][0], mnemonics[0][1], mnemonics[0][0]}, nil)
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)
}

func TestPassphraseBinding(t *testing.T) {
	secret := randomSecret(t, 16)
	mnemonics, err := Generate(1, []Group{{2, 3}}, secret, []byte("TREZOR"), 0)
	require.NoError(t, err)

	recovered, err := Combine(mnemonics[0][:2], []byte("TREZOR"))
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)

	// A wrong passphrase decrypts without error to a different secret.
	wrong, err := Combine(mnemonics[0][:2], []byte("trezor"))
	require.NoError(t, err)
	assert.NotEqual(t, secret, wrong)
}

func TestMixedShareSetsRejected(t *testing.T) {
	secret := randomSecret(t, 16)
	first, err := Generate(1, []Group{{2, 2}}, secret, nil, 0)
	require.NoError(t, err)
	second, err := Generate(1, []Group{{2, 2}}, secret, nil, 0)
	require.NoError(t, err)

	_, err = Combine([]string{first[0][0], second[0][1]}, nil)
	assert.ErrorIs(t, err, ErrMnemonicSetMismatch)
}

func TestConflictingSharesRejected(t *testing.T) {
	secret := randomSecret(t, 16)
	mnemonics, err := Generate(1, []Group{{2, 3}}, secret, nil, 0)
	require.NoError(t, err)

	// Forge a share with the same member index but a different payload.
	forged, err := share.FromMnemonic(mnemonics[0][0])
	require.NoError(t, err)
	forged.Value = randomSecret(t, len(forged.Value))
	forgedMnemonic, err := forged.Mnemonic()
	require.NoError(t, err)

	_, err = Combine([]string{mnemonics[0][0], mnemonics[0][1], forgedMnemonic}, nil)
	assert.ErrorIs(t, err, ErrConflictingShares)
}

func TestTamperedShareFailsDigest(t *testing.T) {
	secret := randomSecret(t, 16)
	mnemonics, err := Generate(1, []Group{{2, 3}}, secret, nil, 0)
	require.NoError(t, err)

	tampered, err := share.FromMnemonic(mnemonics[0][0])
	require.NoError(t, err)
	tampered.Value[0] ^= 0xFF
	tamperedMnemonic, err := tampered.Mnemonic()
	require.NoError(t, err)

	_, err = Combine([]string{tamperedMnemonic, mnemonics[0][1]}, nil)
	assert.ErrorIs(t, err, shamir.ErrDigestMismatch)
}

func TestCombineEmptyInput(t *testing.T) {
	_, err := Combine(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyMnemonics)
}

func TestCombineRejectsInvalidMnemonic(t *testing.T) {
	_, err := Combine([]string{"not a mnemonic"}, nil)
	assert.Error(t, err)
}

func TestGenerateValidation(t *testing.T) {
	secret := randomSecret(t, 16)
	tests := []struct {
		name           string
		groupThreshold int
		groups         []Group
		secret         []byte
		passphrase     []byte
	}{
		{"short secret", 1, []Group{{1, 1}}, make([]byte, 14), nil},
		{"odd secret length", 1, []Group{{1, 1}}, make([]byte, 17), nil},
		{"zero group threshold", 0, []Group{{1, 1}}, secret, nil},
		{"threshold above group count", 2, []Group{{1, 1}}, secret, nil},
		{"no groups", 1, nil, secret, nil},
		{"too many groups", 1, make([]Group, 17), secret, nil},
		{"zero member threshold", 1, []Group{{0, 1}}, secret, nil},
		{"member threshold above count", 1, []Group{{3, 2}}, secret, nil},
		{"one of many", 1, []Group{{1, 3}}, secret, nil},
		{"non-ascii passphrase", 1, []Group{{1, 1}}, secret, []byte("pässword")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.groupThreshold, tt.groups, tt.secret, tt.passphrase, 0)
			assert.Error(t, err)
		})
	}
}

// TestShareMetadataConsistency inspects generated mnemonics at the share
// level: common parameters agree everywhere, group and member indices run
// in input order, and thresholds encode the requested scheme.
func TestShareMetadataConsistency(t *testing.T) {
	secret := randomSecret(t, 16)
	groups := []Group{{2, 3}, {1, 1}}
	mnemonics, err := Generate(2, groups, secret, nil, 3)
	require.NoError(t, err)

	var params share.CommonParameters
	for groupIndex, groupMnemonics := range mnemonics {
		for memberIndex, m := range groupMnemonics {
			decoded, err := share.FromMnemonic(m)
			require.NoError(t, err)

			if groupIndex == 0 && memberIndex == 0 {
				params = decoded.CommonParameters()
				assert.EqualValues(t, 2, params.GroupThreshold)
				assert.EqualValues(t, 2, params.GroupCount)
				assert.EqualValues(t, 3, params.IterationExponent)
				assert.LessOrEqual(t, params.Identifier, uint16(share.MaxIdentifier))
			} else {
				assert.Equal(t, params, decoded.CommonParameters())
			}
			assert.EqualValues(t, groupIndex, decoded.GroupIndex)
			assert.EqualValues(t, memberIndex, decoded.MemberIndex)
			assert.EqualValues(t, groups[groupIndex].MemberThreshold, decoded.MemberThreshold)
		}
	}
}

// TestGroupPrefixesShared verifies that every mnemonic of a group starts
// with the same words, and that those words differ between groups.
func TestGroupPrefixesShared(t *testing.T) {
	secret := randomSecret(t, 16)
	mnemonics, err := Generate(2, []Group{{2, 3}, {2, 2}}, secret, nil, 0)
	require.NoError(t, err)

	prefix := func(m string) string {
		return strings.Join(strings.Fields(m)[:share.GroupPrefixLengthWords], " ")
	}
	for _, groupMnemonics := range mnemonics {
		for _, m := range groupMnemonics[1:] {
			assert.Equal(t, prefix(groupMnemonics[0]), prefix(m))
		}
	}
	assert.NotEqual(t, prefix(mnemonics[0][0]), prefix(mnemonics[1][0]))
}

func TestIdentifiersVaryBetweenSets(t *testing.T) {
	secret := randomSecret(t, 16)
	seen := make(map[uint16]bool)
	for i := 0; i < 8; i++ {
		mnemonics, err := Generate(1, []Group{{1, 1}}, secret, nil, 0)
		require.NoError(t, err)
		decoded, err := share.FromMnemonic(mnemonics[0][0])
		require.NoError(t, err)
		seen[decoded.Identifier] = true
	}
	assert.Greater(t, len(seen), 1, "identifiers should be drawn fresh for every split")
}
