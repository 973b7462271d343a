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
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/consensys/go-satexpr/pkg/check"
	"github.com/consensys/go-satexpr/pkg/lower"
	"github.com/consensys/go-satexpr/pkg/matrix/sat"
	"github.com/consensys/go-satexpr/pkg/util"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] fixture_file(s)",
	Short: "Solve fixtures and check their declared expectations.",
	Long: `Lower each fixture file into an implication matrix, solve it, and compare the
	post-solve domain of every variable carrying an expectation against that expectation.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg checkConfig
		//
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configure(cmd)
		//
		cfg.strict = getFlag(cmd, "strict")
		cfg.timeout = getDuration(cmd, "timeout")
		//
		failures := 0
		//
		for _, filename := range args {
			if !checkFixture(filename, cfg) {
				failures++
			}
		}
		//
		if failures > 0 && cfg.strict {
			os.Exit(1)
		}
	},
}

// check config encapsulates parameters used when checking fixtures.
type checkConfig struct {
	// Whether or not to fail when any expectation is not met.
	strict bool
	// Time permitted for solving each fixture (zero means no limit).
	timeout time.Duration
}

// Lower, solve and check a single fixture, reporting the outcome.
func checkFixture(filename string, cfg checkConfig) bool {
	var (
		program = readProgram(filename)
		m       = sat.New()
		stats   = util.NewPerfStats()
		ctx     = context.Background()
		cancel  = func() {}
	)
	//
	if cfg.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
	}
	//
	defer cancel()
	//
	lower.CompileProgram(m, program)
	//
	satisfiable, err := m.Solve(ctx)
	if err != nil {
		log.Errorf("%s: %s", filename, err)
		return false
	}
	//
	mismatches := check.CheckAll(program.Registry(), m)
	stats.Log(fmt.Sprintf("Checking %s", filename))
	//
	if len(mismatches) == 0 {
		fmt.Printf("%s %s (satisfiable=%t)\n", color.GreenString("PASS"), filename, satisfiable)
		return true
	}
	//
	fmt.Printf("%s %s (satisfiable=%t)\n", color.RedString("FAIL"), filename, satisfiable)
	//
	for _, mismatch := range mismatches {
		fmt.Printf("\t%s\n", mismatch.Error())
	}
	//
	return false
}

// Get an expected duration, or panic if an error arises.
func getDuration(cmd *cobra.Command, flag string) time.Duration {
	r, err := cmd.Flags().GetDuration(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("strict", true, "exit with an error when any expectation is not met")
	checkCmd.Flags().Duration("timeout", 0, "limit time spent solving each fixture")
}
