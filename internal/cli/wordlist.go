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
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/wordlist"
)

// wordlistCmd prints the share vocabulary
var wordlistCmd = &cobra.Command{
	Use:   "wordlist",
	Short: "Print the share vocabulary",
	Long: `Print the full vocabulary that mnemonic shares are built from,
one word per line in index order.`,
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)
		if err := printer.PrintWordlist(wordlist.English().Words()); err != nil {
			handleError(err)
		}
	},
}
