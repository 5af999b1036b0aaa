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
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/recovery"
)

var recoverPassphrase bool

// recoverCmd reconstructs a master secret from mnemonic shares
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover a master secret from mnemonic shares",
	Long: `Recover a master secret by entering mnemonic shares interactively.

Shares are read from standard input, one mnemonic per line. After each
share the command reports which groups are complete and how many more
shares each started group needs. Entry stops as soon as enough groups
are complete.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := getConfig().Logger()
		session := recovery.New()
		if err := collectShares(session, os.Stdin, os.Stderr); err != nil {
			handleError(err)
		}
		logger.Debugf("collected %d shares across %d groups",
			len(session.Mnemonics()), len(session.Groups()))
		if !session.IsComplete() {
			handleError(fmt.Errorf("recovery was aborted before enough shares were entered"))
		}

		var passphrase []byte
		if recoverPassphrase {
			var err error
			passphrase, err = promptPassphrase()
			if err != nil {
				handleError(err)
			}
		}

		secret, err := session.Combine(passphrase)
		if err != nil {
			handleError(fmt.Errorf("recovery failed: %w", err))
		}

		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)
		if err := printer.PrintSecret(hex.EncodeToString(secret)); err != nil {
			handleError(err)
		}
	},
}

func init() {
	recoverCmd.Flags().BoolVarP(&recoverPassphrase, "passphrase", "p", false,
		"prompt for the passphrase the shares were created with")
}

// collectShares reads mnemonics from r until the session is complete or
// input ends. Progress goes to w after every accepted share.
func collectShares(session *recovery.Session, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<16)
	for !session.IsComplete() {
		fmt.Fprint(w, "Enter a recovery share: ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := session.Accept(line); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		printStatus(session, w)
	}
	return nil
}

// printStatus writes the per-group progress of the session.
func printStatus(session *recovery.Session, w io.Writer) {
	complete := 0
	for _, index := range session.Groups() {
		if session.GroupIsComplete(index) {
			complete++
		}
	}
	fmt.Fprintf(w, "Completed %d of %d groups needed:\n",
		complete, session.GroupThreshold())

	for groupIndex := uint8(0); int(groupIndex) < session.GroupCount(); groupIndex++ {
		have, need := session.GroupStatus(groupIndex)
		var marker string
		switch {
		case need > 0 && have >= need:
			marker = "✓" // group complete
		case need > 0:
			marker = fmt.Sprintf("%d of %d", have, need)
		default:
			marker = "✗" // no shares yet
		}
		fmt.Fprintf(w, "  %s shares from group %s\n", marker, session.GroupPrefix(groupIndex))
	}
}
