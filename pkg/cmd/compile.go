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
	"io"
	"os"

	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/consensys/go-satexpr/pkg/lower"
	"github.com/consensys/go-satexpr/pkg/matrix"
	"github.com/consensys/go-satexpr/pkg/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] fixture_file",
	Short: "lower a fixture into domain restrictions and relations.",
	Long: `Lower every assignment of a given fixture file, in declaration order, and print
	the resulting sequence of domain restrictions and relations.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configure(cmd)
		//
		stats := util.NewPerfStats()
		program := readProgram(args[0])
		recorder := matrix.NewRecorder()
		//
		lower.CompileProgram(recorder, program)
		stats.Log("Lowering")
		//
		printCalls(os.Stdout, program.Registry(), recorder.Calls(), getFlag(cmd, "relations"))
	},
}

// Print recorded calls using variable names where available.
func printCalls(out io.Writer, registry *expr.Registry, calls []matrix.Call, relationsOnly bool) {
	var (
		domain   = color.New(color.FgCyan).SprintFunc()
		relation = color.New(color.FgGreen).SprintFunc()
	)
	//
	for _, c := range calls {
		switch {
		case c.Kind == matrix.DOMAIN && !relationsOnly:
			fmt.Fprintf(out, "%s %s {%t %t}\n", domain("domain"), nameOf(registry, c.Id), c.Admits0, c.Admits1)
		case c.Kind == matrix.RELATION:
			r := c.Relation
			fmt.Fprintf(out, "%s %s = %s %s %s\n", relation("relation"), nameOf(registry, r.Result),
				nameOf(registry, r.Left), r.Op, nameOf(registry, r.Right))
		}
	}
}

func nameOf(registry *expr.Registry, id expr.Id) string {
	if v, ok := registry.Lookup(id); ok {
		return v.String()
	}
	//
	return fmt.Sprintf("#%d", id)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("relations", false, "print relations only (omitting domain restrictions)")
}
