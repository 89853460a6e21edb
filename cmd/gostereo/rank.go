/*
 * rank.go, part of gostereo.
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
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gostereo/gostereo/chemplot"
	"github.com/gostereo/gostereo/rank"
)

var (
	rankJSON bool
	rankPlot string
	rankTraj string
)

var rankCmd = &cobra.Command{
	Use:   "rank SMILES",
	Short: "Enumerate, minimize and rank the stereoisomers of a molecule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "print the full result as JSON")
	rankCmd.Flags().StringVar(&rankPlot, "plot", "", "write an energy-level diagram to this file")
	rankCmd.Flags().StringVar(&rankTraj, "traj", "", "write per-isomer minimization trajectories to this directory")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	opts := &rank.Options{
		Seed:           viper.GetInt64("seed"),
		Workers:        viper.GetInt("workers"),
		MinimizeBudget: viper.GetInt("budget"),
		MaxIsomers:     viper.GetInt("max_isomers"),
		Logger:         logger,
		FrameDir:       rankTraj,
	}
	res, err := rank.Run(ctx, args[0], opts)
	if rankJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if jerr := enc.Encode(res); jerr != nil {
			return jerr
		}
	} else if res.Success {
		printRanking(res)
	}
	if err != nil {
		return err
	}
	if rankPlot != "" {
		energies := make([]float64, len(res.Isomers))
		labels := make([]string, len(res.Isomers))
		for i, iso := range res.Isomers {
			energies[i] = iso.Energy
			labels[i] = iso.Notation
		}
		title := fmt.Sprintf("Stereoisomers of %s", res.InputNotation)
		if err := chemplot.EnergyDiagram(energies, labels, title, rankPlot); err != nil {
			return err
		}
	}
	return nil
}

func printRanking(res *rank.Result) {
	fmt.Printf("%s: %d stereoisomer(s), %d dropped, %.2fs\n",
		res.InputNotation, res.TotalIsomers, res.Dropped, res.ElapsedSeconds)
	for _, iso := range res.Isomers {
		fmt.Printf("%4d  %12.3f kcal/mol  %s\n", iso.Rank, iso.Energy, iso.Notation)
	}
}
