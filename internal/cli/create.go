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
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/mnemonic"
	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/share"
)

const (
	defaultStrengthBits      = 128
	defaultIterationExponent = 1
)

// GroupShares pairs one group's mnemonics with its member threshold for
// display purposes.
type GroupShares struct {
	MemberThreshold int
	Mnemonics       []string
}

var (
	createGroups     []string
	createThreshold  int
	createExponent   int
	createStrength   int
	createSecretHex  string
	createPassphrase bool
)

var groupSpecPattern = regexp.MustCompile(`^(\d+)of(\d+)$`)

// createCmd generates a new set of mnemonic shares
var createCmd = &cobra.Command{
	Use:   "create <scheme>",
	Short: "Split a master secret into mnemonic shares",
	Long: `Split a master secret into mnemonic word shares.

The scheme argument selects the group structure:

  single   a single share that reconstructs on its own
  MofN     M required out of N shares in one group, e.g. 3of5
  master   1-of-1 master share plus a 3-of-5 backup group
  custom   groups given explicitly with --group and --threshold

Without --secret a random master secret of --strength bits is
generated. A passphrase protects the shares only when the master
secret is supplied explicitly, so that a mistyped passphrase during a
later recovery is detectable against a known secret.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("exponent") {
			createExponent = viper.GetInt("exponent")
		}
		if !cmd.Flags().Changed("strength") {
			createStrength = viper.GetInt("strength")
		}

		scheme, err := parseScheme(args[0], createThreshold, createGroups)
		if err != nil {
			handleError(err)
		}

		masterSecret, err := resolveMasterSecret(createSecretHex, createStrength)
		if err != nil {
			handleError(err)
		}

		var passphrase []byte
		if createPassphrase {
			if createSecretHex == "" {
				handleError(fmt.Errorf("a passphrase requires an explicitly specified master secret"))
			}
			passphrase, err = promptNewPassphrase()
			if err != nil {
				handleError(err)
			}
		}

		printVerbose("splitting %d-bit secret into %d groups, group threshold %d",
			len(masterSecret)*8, len(scheme.groups), scheme.groupThreshold)

		mnemonics, err := mnemonic.Generate(scheme.groupThreshold, scheme.groups,
			masterSecret, passphrase, uint8(createExponent))
		if err != nil {
			handleError(err)
		}

		groups := make([]GroupShares, len(mnemonics))
		for i, groupMnemonics := range mnemonics {
			groups[i] = GroupShares{
				MemberThreshold: scheme.groups[i].MemberThreshold,
				Mnemonics:       groupMnemonics,
			}
		}

		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)
		if err := printer.PrintShares(groups); err != nil {
			handleError(err)
		}
	},
}

func init() {
	createCmd.Flags().StringArrayVarP(&createGroups, "group", "g", nil,
		"group specification as TofN, repeatable (custom scheme)")
	createCmd.Flags().IntVarP(&createThreshold, "threshold", "t", 1,
		"number of groups required for recovery (custom scheme)")
	createCmd.Flags().IntVarP(&createExponent, "exponent", "E", defaultIterationExponent,
		"iteration exponent of the passphrase key stretching")
	createCmd.Flags().IntVarP(&createStrength, "strength", "s", defaultStrengthBits,
		"strength of the generated master secret in bits")
	createCmd.Flags().StringVarP(&createSecretHex, "secret", "S", "",
		"master secret as a hex string (default: generated)")
	createCmd.Flags().BoolVarP(&createPassphrase, "passphrase", "p", false,
		"prompt for a passphrase to protect the shares")
}

// scheme is a parsed group structure.
type scheme struct {
	groupThreshold int
	groups         []mnemonic.Group
}

// parseScheme turns the scheme argument and flags into a group structure.
func parseScheme(name string, threshold int, groupSpecs []string) (*scheme, error) {
	if name != "custom" && len(groupSpecs) > 0 {
		return nil, fmt.Errorf("the --group option is only valid with the custom scheme")
	}
	switch name {
	case "single":
		return &scheme{1, []mnemonic.Group{{MemberThreshold: 1, MemberCount: 1}}}, nil
	case "master":
		return &scheme{1, []mnemonic.Group{
			{MemberThreshold: 1, MemberCount: 1},
			{MemberThreshold: 3, MemberCount: 5},
		}}, nil
	case "custom":
		if len(groupSpecs) == 0 {
			return nil, fmt.Errorf("the custom scheme requires at least one --group")
		}
		groups := make([]mnemonic.Group, 0, len(groupSpecs))
		for _, spec := range groupSpecs {
			group, err := parseGroupSpec(spec)
			if err != nil {
				return nil, err
			}
			groups = append(groups, group)
		}
		return &scheme{threshold, groups}, nil
	default:
		group, err := parseGroupSpec(name)
		if err != nil {
			return nil, fmt.Errorf("unknown scheme %q: expected single, master, custom, or MofN", name)
		}
		return &scheme{1, []mnemonic.Group{group}}, nil
	}
}

// parseGroupSpec parses a TofN specification such as 3of5.
func parseGroupSpec(spec string) (mnemonic.Group, error) {
	match := groupSpecPattern.FindStringSubmatch(spec)
	if match == nil {
		return mnemonic.Group{}, fmt.Errorf("invalid group specification %q: expected TofN, e.g. 3of5", spec)
	}
	threshold, err := strconv.Atoi(match[1])
	if err != nil {
		return mnemonic.Group{}, fmt.Errorf("invalid group threshold in %q: %w", spec, err)
	}
	count, err := strconv.Atoi(match[2])
	if err != nil {
		return mnemonic.Group{}, fmt.Errorf("invalid group count in %q: %w", spec, err)
	}
	return mnemonic.Group{MemberThreshold: threshold, MemberCount: count}, nil
}

// resolveMasterSecret decodes the hex secret or generates a random one.
func resolveMasterSecret(secretHex string, strengthBits int) ([]byte, error) {
	if secretHex != "" {
		secret, err := hex.DecodeString(secretHex)
		if err != nil {
			return nil, fmt.Errorf("invalid master secret hex: %w", err)
		}
		return secret, nil
	}
	if strengthBits < share.MinStrengthBits || strengthBits%16 != 0 {
		return nil, fmt.Errorf("strength must be a multiple of 16 bits, at least %d", share.MinStrengthBits)
	}
	secret := make([]byte, strengthBits/8)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating master secret: %w", err)
	}
	return secret, nil
}
