// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command circuitstat configures one of a small set of demo circuits and
// prints its ConstraintSystem statistics: degree, blinding factors and column
// counts. It never synthesizes a witness or drives a prover — this is a
// debug/view tool in the spirit of go-corset's debug and inspect
// subcommands, not a proving pipeline.
package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zkplonk/circuit/cs"
	"github.com/zkplonk/circuit/field/bls12377"
)

var rootCmd = &cobra.Command{
	Use:   "circuitstat circuit_name",
	Short: "Print ConstraintSystem statistics for a demo circuit.",
	Long: `circuitstat configures one of a small built-in set of demo circuits
and prints the resulting ConstraintSystem's shape: required degree, blinding
factors, minimum rows, and column/gate/lookup counts.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}

		build, ok := registry[args[0]]
		if !ok {
			fmt.Fprintf(os.Stderr, "circuitstat: unknown circuit %q, available: %s\n", args[0], strings.Join(names(), ", "))
			os.Exit(1)
		}

		printStats(args[0], build())
	},
}

func init() {
	rootCmd.Flags().Bool("verbose", false, "Enable debug-level logging")
}

func printStats(name string, csys *cs.ConstraintSystem[bls12377.Element]) {
	fmt.Printf("circuit: %s\n", name)
	fmt.Printf("  degree:           %d\n", csys.Degree())
	fmt.Printf("  blinding factors: %d\n", csys.BlindingFactors())
	fmt.Printf("  minimum rows:     %d\n", csys.MinimumRows())
	fmt.Printf("  fixed columns:    %d\n", csys.NumFixedColumns())
	fmt.Printf("  advice columns:   %d\n", csys.NumAdviceColumns())
	fmt.Printf("  instance columns: %d\n", csys.NumInstanceColumns())
	fmt.Printf("  selectors:        %d\n", csys.NumSelectors())
	fmt.Printf("  gates:            %d\n", len(csys.Gates()))
	fmt.Printf("  lookups:          %d\n", len(csys.Lookups()))
	fmt.Printf("  shuffles:         %d\n", len(csys.Shuffles()))
	fmt.Printf("  equality columns: %d\n", len(csys.Permutation().Columns()))
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
