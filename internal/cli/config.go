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

	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-shamir-mnemonic/pkg/logging"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// OutputFormat controls output formatting (text, json)
	OutputFormat string

	// Verbose enables verbose logging
	Verbose bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: "text",
		Verbose:      false,
	}
}

// Logger builds a logger honoring the verbose flag
func (c *Config) Logger() *logging.Logger {
	return logging.NewLogger(c.Verbose)
}

// initConfig reads the config file and environment variables. Flags set
// explicitly on the command line keep precedence over both.
func initConfig() {
	if globalConfig.ConfigFile != "" {
		viper.SetConfigFile(globalConfig.ConfigFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".shamir-mnemonic")
		}
	}

	viper.SetEnvPrefix("SHAMIR_MNEMONIC")
	viper.AutomaticEnv()

	viper.SetDefault("strength", defaultStrengthBits)
	viper.SetDefault("exponent", defaultIterationExponent)
	viper.SetDefault("output", "text")

	if err := viper.ReadInConfig(); err == nil {
		printVerbose("using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok && globalConfig.ConfigFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
	}

	if !rootCmd.PersistentFlags().Changed("output") {
		globalConfig.OutputFormat = viper.GetString("output")
	}
}
