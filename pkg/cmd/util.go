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
	"fmt"
	"os"

	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/consensys/go-satexpr/pkg/fixture"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Apply the options shared by every command.
func configure(cmd *cobra.Command) {
	// Configure log level
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	// Colour only when writing to a terminal, unless forced.
	color.NoColor = !getFlag(cmd, "color") && !term.IsTerminal(int(os.Stdout.Fd()))
}

// Read a fixture file, exiting on failure.
func readProgram(filename string) *expr.Program {
	program, err := fixture.ReadFile(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return program
}
