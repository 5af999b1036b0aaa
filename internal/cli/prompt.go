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

package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/jeremyhahn/go-shamir-mnemonic/internal/passphrase"
)

// readPassphrase reads a passphrase from the terminal without echo.
func readPassphrase(prompt string) (*passphrase.Passphrase, error) {
	fmt.Fprint(os.Stderr, prompt)
	input, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	defer func() {
		for i := range input {
			input[i] = 0
		}
	}()
	return passphrase.New(input)
}

// promptNewPassphrase prompts for a passphrase twice and requires both
// entries to match.
func promptNewPassphrase() ([]byte, error) {
	first, err := readPassphrase("Enter passphrase: ")
	if err != nil {
		return nil, err
	}
	defer first.Clear()

	second, err := readPassphrase("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}
	defer second.Clear()

	equal, err := passphrase.Equal(first, second)
	if err != nil {
		return nil, err
	}
	if !equal {
		return nil, fmt.Errorf("passphrases do not match")
	}
	return first.Bytes()
}

// promptPassphrase prompts for a passphrase once, for recovery.
func promptPassphrase() ([]byte, error) {
	entered, err := readPassphrase("Enter passphrase: ")
	if err != nil {
		return nil, err
	}
	defer entered.Clear()
	return entered.Bytes()
}
