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
package util

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/consensys/go-satexpr/pkg/check"
	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/consensys/go-satexpr/pkg/fixture"
	"github.com/consensys/go-satexpr/pkg/lower"
	"github.com/consensys/go-satexpr/pkg/matrix"
	"github.com/consensys/go-satexpr/pkg/matrix/sat"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the fixture files are found.
const TestDir = "../../testdata"

// TIMEOUT bounds the time spent solving any single fixture.
const TIMEOUT = 30 * time.Second

// CheckValid checks that every expectation declared by a given fixture (in the
// "valid" directory) is met once solved.
func CheckValid(t *testing.T, test string) {
	t.Parallel()
	//
	program, mismatches := solveFixture(t, fmt.Sprintf("%s/valid/%s.yaml", TestDir, test))
	//
	for _, mismatch := range mismatches {
		t.Errorf("%s: %s", test, mismatch.Error())
	}
	//
	checkRecorded(t, program)
}

// CheckInvalid checks that at least one expectation declared by a given
// fixture (in the "invalid" directory) is not met once solved.
func CheckInvalid(t *testing.T, test string) {
	t.Parallel()
	//
	program, mismatches := solveFixture(t, fmt.Sprintf("%s/invalid/%s.yaml", TestDir, test))
	//
	if len(mismatches) == 0 {
		t.Errorf("%s: expected some expectation to fail", test)
	}
	//
	checkRecorded(t, program)
}

// Load a fixture, lower it into a fresh matrix, solve and then check all
// expectations.
func solveFixture(t *testing.T, filename string) (*expr.Program, []check.Mismatch) {
	program, err := fixture.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	//
	ctx, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	//
	m := sat.New()
	lower.CompileProgram(m, program)
	//
	if _, err := m.Solve(ctx); err != nil {
		t.Fatal(err)
	}
	//
	return program, check.CheckAll(program.Registry(), m)
}

// Sanity check lowering structure: every relation refers only to variables
// previously defined (by a leaf domain restriction or an earlier relation),
// except for assignment targets whose binding comes last.
func checkRecorded(t *testing.T, program *expr.Program) {
	for _, assignment := range program.Assignments() {
		var (
			recorder = matrix.NewRecorder()
			defined  = make(map[expr.Id]bool)
		)
		//
		lower.CompileAssignment(recorder, assignment)
		//
		for _, c := range recorder.Calls() {
			if c.Kind == matrix.DOMAIN {
				defined[c.Id] = true
				continue
			}
			//
			r := c.Relation
			if !defined[r.Left] || !defined[r.Right] {
				t.Errorf("relation %s uses undefined operand", r.String())
			}
			//
			defined[r.Result] = true
		}
	}
}
