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

// Package passphrase holds a passphrase in memory for the duration of a
// CLI invocation, with memory zeroing once it is no longer needed.
//
// Unlike a login password, the empty passphrase is a legitimate value
// here: the cipher always runs, and no passphrase simply means the empty
// string. Validation therefore rejects encoding problems, never absence.
package passphrase

import (
	"crypto/subtle"
	"errors"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/feistel"
)

// ErrCleared is returned when the passphrase has already been zeroed.
var ErrCleared = errors.New("passphrase: passphrase has been cleared from memory")

// Passphrase stores a passphrase as cleartext bytes that can be securely
// zeroed when no longer needed.
type Passphrase struct {
	data    []byte
	cleared bool
}

// New copies the given bytes into a new Passphrase. The input must be
// printable ASCII; empty is allowed.
func New(data []byte) (*Passphrase, error) {
	if err := feistel.CheckPassphrase(data); err != nil {
		return nil, err
	}
	p := make([]byte, len(data))
	copy(p, data)
	return &Passphrase{data: p}, nil
}

// Bytes returns a copy of the passphrase bytes, or an error after Clear.
func (p *Passphrase) Bytes() ([]byte, error) {
	if p.cleared {
		return nil, ErrCleared
	}
	result := make([]byte, len(p.data))
	copy(result, p.data)
	return result, nil
}

// Clear zeroes the passphrase in memory. Irreversible.
func (p *Passphrase) Clear() {
	if !p.cleared {
		for i := range p.data {
			p.data[i] = 0
		}
		// ConstantTimeCopy keeps the zeroing from being optimized away
		subtle.ConstantTimeCopy(1, p.data, make([]byte, len(p.data)))
		p.data = nil
		p.cleared = true
	}
}

// Equal compares two passphrases in constant time.
func Equal(a, b *Passphrase) (bool, error) {
	if a.cleared || b.cleared {
		return false, ErrCleared
	}
	return subtle.ConstantTimeCompare(a.data, b.data) == 1, nil
}
