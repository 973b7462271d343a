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
package check

import (
	"fmt"

	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/consensys/go-satexpr/pkg/matrix"
	log "github.com/sirupsen/logrus"
)

// Mismatch describes a variable whose post-solve domain differs from what was
// expected of it.
type Mismatch struct {
	Name     string
	Id       expr.Id
	Expected [2]bool
	Actual   [2]bool
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("expected {%t %t} for %s (%d), got {%t %t}", m.Expected[0], m.Expected[1], m.Name, m.Id,
		m.Actual[0], m.Actual[1])
}

// Compare a variable's expectation against its domain in a (solved) matrix.
// Variables without an expectation always pass.
func Compare(v *expr.Variable, m matrix.Matrix) (Mismatch, bool) {
	expect := v.Expectation()
	//
	if !expect.Checked {
		return Mismatch{}, true
	}
	//
	actual := [2]bool{m.ValueInDomain(v.Id(), false), m.ValueInDomain(v.Id(), true)}
	expected := [2]bool{expect.Expect0, expect.Expect1}
	//
	if actual != expected {
		return Mismatch{v.String(), v.Id(), expected, actual}, false
	}
	//
	return Mismatch{}, true
}

// Check whether a variable's post-solve domain matches its expectation, if it
// has one.  Failures are reported as warnings.
func Check(v *expr.Variable, m matrix.Matrix) bool {
	mismatch, ok := Compare(v, m)
	//
	if !ok {
		log.Warn(mismatch.Error())
	}
	//
	return ok
}

// CheckAll compares every variable of a registry against its expectation,
// returning all mismatches found in identity order.
func CheckAll(registry *expr.Registry, m matrix.Matrix) []Mismatch {
	var (
		mismatches []Mismatch
		checked    uint
	)
	//
	for _, v := range registry.Variables() {
		if v.Expectation().Checked {
			checked++
		}
		//
		if mismatch, ok := Compare(v, m); !ok {
			log.Warn(mismatch.Error())
			mismatches = append(mismatches, mismatch)
		}
	}
	//
	log.Debugf("checked %d expectations, %d mismatches", checked, len(mismatches))
	//
	return mismatches
}
