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

// Package recovery tracks an interactive recovery attempt: shares arrive
// one mnemonic at a time, and the session reports per-group progress until
// enough groups are complete to reconstruct the master secret.
package recovery

import (
	"fmt"
	"sort"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/mnemonic"
	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/share"
)

// State describes how far a recovery session has progressed.
type State int

const (
	// StateEmpty means no share has been accepted yet.
	StateEmpty State = iota

	// StateCollecting means at least one share has been accepted but more
	// are needed.
	StateCollecting

	// StateComplete means enough groups are complete to reconstruct.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateCollecting:
		return "collecting"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session accumulates shares of one share set. The first accepted share
// fixes the common parameters; every later share must match them. The
// zero value is not usable, call New.
type Session struct {
	last      *share.Share
	groups    map[uint8][]*share.Share
	mnemonics []string
}

// New starts an empty recovery session.
func New() *Session {
	return &Session{groups: make(map[uint8][]*share.Share)}
}

// Accept validates the mnemonic and adds its share to the session.
// Duplicates are ignored without error. Shares from a different share
// set, or conflicting with an already accepted member index, are
// rejected and the session is left unchanged.
func (s *Session) Accept(m string) error {
	decoded, err := share.FromMnemonic(m)
	if err != nil {
		return err
	}
	if s.last != nil && decoded.CommonParameters() != s.last.CommonParameters() {
		return fmt.Errorf("%w: this share is not part of the set being recovered", mnemonic.ErrMnemonicSetMismatch)
	}
	for _, existing := range s.groups[decoded.GroupIndex] {
		if existing.Equal(decoded) {
			return nil
		}
		if existing.MemberThreshold != decoded.MemberThreshold {
			return fmt.Errorf("%w: group %d shares disagree on the member threshold", mnemonic.ErrMnemonicSetMismatch, decoded.GroupIndex)
		}
		if existing.MemberIndex == decoded.MemberIndex {
			return fmt.Errorf("%w: group %d member %d", mnemonic.ErrConflictingShares, decoded.GroupIndex, decoded.MemberIndex)
		}
	}
	s.last = decoded
	s.groups[decoded.GroupIndex] = append(s.groups[decoded.GroupIndex], decoded)
	s.mnemonics = append(s.mnemonics, m)
	return nil
}

// State reports the session's progress.
func (s *Session) State() State {
	if s.last == nil {
		return StateEmpty
	}
	if s.IsComplete() {
		return StateComplete
	}
	return StateCollecting
}

// GroupCount returns the total number of groups in the share set, or 0
// before the first share is accepted.
func (s *Session) GroupCount() int {
	if s.last == nil {
		return 0
	}
	return int(s.last.GroupCount)
}

// GroupThreshold returns the number of complete groups required, or 0
// before the first share is accepted.
func (s *Session) GroupThreshold() int {
	if s.last == nil {
		return 0
	}
	return int(s.last.GroupThreshold)
}

// GroupStatus reports how many distinct shares the group holds and how
// many its threshold requires. need is 0 until the group's first share
// arrives, because the member threshold travels inside the shares.
func (s *Session) GroupStatus(groupIndex uint8) (have, need int) {
	members := s.groups[groupIndex]
	if len(members) == 0 {
		return 0, 0
	}
	return len(members), int(members[0].MemberThreshold)
}

// GroupIsComplete reports whether the group holds at least its member
// threshold of distinct shares.
func (s *Session) GroupIsComplete(groupIndex uint8) bool {
	have, need := s.GroupStatus(groupIndex)
	return need > 0 && have >= need
}

// IsComplete reports whether enough groups are complete to reconstruct.
func (s *Session) IsComplete() bool {
	if s.last == nil {
		return false
	}
	complete := 0
	for index := range s.groups {
		if s.GroupIsComplete(index) {
			complete++
		}
	}
	return complete >= int(s.last.GroupThreshold)
}

// GroupPrefix returns the leading mnemonic words identifying the given
// group within the share set, or an empty string before the first share
// is accepted.
func (s *Session) GroupPrefix(groupIndex uint8) string {
	if s.last == nil {
		return ""
	}
	prefix, err := s.last.GroupPrefix(groupIndex)
	if err != nil {
		return ""
	}
	return prefix
}

// Groups returns the indices of groups holding at least one share, in
// ascending order.
func (s *Session) Groups() []uint8 {
	indices := make([]uint8, 0, len(s.groups))
	for index := range s.groups {
		indices = append(indices, index)
	}
	sort.Slice(indices, func(a, b int) bool { return indices[a] < indices[b] })
	return indices
}

// Mnemonics returns a copy of the accepted mnemonics in arrival order.
func (s *Session) Mnemonics() []string {
	accepted := make([]string, len(s.mnemonics))
	copy(accepted, s.mnemonics)
	return accepted
}

// Combine reconstructs the master secret from the accepted shares.
func (s *Session) Combine(passphrase []byte) ([]byte, error) {
	return mnemonic.Combine(s.mnemonics, passphrase)
}
