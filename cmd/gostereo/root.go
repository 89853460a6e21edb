/*
 * root.go, part of gostereo.
 *
 * Copyright 2024 The gostereo authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gostereo",
	Short: "Rank the stereoisomers of a molecule by stability",
	Long: `gostereo enumerates the stereoisomers of a SMILES input, embeds each
one in 3D, minimizes its force-field energy and ranks them from most to
least stable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

// Execute runs the command tree, printing the failure to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "gostereo:", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.gostereo.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Int64("seed", 0, "embedding seed (0 means the built-in default)")
	pf.Int("workers", 0, "concurrent isomer jobs (0 means all CPUs)")
	pf.Int("budget", 0, "minimizer iteration cap per isomer (0 means the default)")
	pf.Int("max-isomers", 0, "truncate the enumeration after this many isomers (0 means no limit)")
	viper.BindPFlag("seed", pf.Lookup("seed"))
	viper.BindPFlag("workers", pf.Lookup("workers"))
	viper.BindPFlag("budget", pf.Lookup("budget"))
	viper.BindPFlag("max_isomers", pf.Lookup("max-isomers"))
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".gostereo")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("GOSTEREO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		//a missing default config is fine, an unreadable explicit one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return err
		}
	}
	return nil
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	var err error
	logger, err = cfg.Build()
	return err
}
