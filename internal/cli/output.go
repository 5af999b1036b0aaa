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
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintShares prints the generated mnemonics grouped by share group
func (p *Printer) PrintShares(groups []GroupShares) error {
	switch p.format {
	case OutputFormatJSON:
		groupList := make([]map[string]interface{}, len(groups))
		for i, g := range groups {
			groupList[i] = map[string]interface{}{
				"group":     i + 1,
				"threshold": g.MemberThreshold,
				"shares":    g.Mnemonics,
			}
		}
		return p.printJSON(map[string]interface{}{
			"groups": groupList,
		})
	case OutputFormatText:
		for i, g := range groups {
			if i > 0 {
				fmt.Fprintln(p.writer)
			}
			fmt.Fprintf(p.writer, "Group %d of %d - %d of %d shares required:\n",
				i+1, len(groups), g.MemberThreshold, len(g.Mnemonics))
			for _, m := range g.Mnemonics {
				fmt.Fprintf(p.writer, "  %s\n", m)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret prints a recovered master secret as hex
func (p *Printer) PrintSecret(secretHex string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"master_secret": secretHex,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Your master secret is: %s\n", secretHex)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintWordlist prints the share vocabulary
func (p *Printer) PrintWordlist(words []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"words": words,
		})
	case OutputFormatText:
		for _, w := range words {
			fmt.Fprintln(p.writer, w)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status":  "success",
			"message": message,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// printJSON prints data as JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
