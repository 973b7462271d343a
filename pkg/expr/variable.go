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
package expr

import "fmt"

// Id uniquely identifies a variable within a registry.
type Id uint

// Variable represents a boolean unknown.  Each variable carries a priori hints
// about which values it may take, along with an optional expectation about
// which values remain admissible once solving has completed.
type Variable struct {
	id   Id
	name string
	// Whether zero is admissible before solving.
	admits0 bool
	// Whether one is admissible before solving.
	admits1 bool
	// Post-solve expectation (if any)
	expect Expectation
}

// Expectation describes which values a variable is expected to admit after
// solving.  An expectation which is not checked is ignored.
type Expectation struct {
	Checked bool
	Expect0 bool
	Expect1 bool
}

func newVariable(id Id) *Variable {
	return &Variable{id: id, admits0: true, admits1: true}
}

// Id returns the unique identity of this variable.
func (v *Variable) Id() Id {
	return v.id
}

// Name returns the name of this variable, or the empty string if it is
// anonymous.
func (v *Variable) Name() string {
	return v.name
}

// HasName checks whether this variable has been given a name.
func (v *Variable) HasName() bool {
	return v.name != ""
}

// Domain returns the a priori admissibility of zero and one (respectively).
func (v *Variable) Domain() (bool, bool) {
	return v.admits0, v.admits1
}

// Restrict sets the a priori admissibility of zero and one.
func (v *Variable) Restrict(admits0, admits1 bool) {
	v.admits0 = admits0
	v.admits1 = admits1
}

// Expectation returns the post-solve expectation of this variable.
func (v *Variable) Expectation() Expectation {
	return v.expect
}

// Expect declares which values this variable should admit once solved.
func (v *Variable) Expect(admits0, admits1 bool) {
	v.expect = Expectation{true, admits0, admits1}
}

// String returns the name of this variable, or a placeholder derived from its
// identity when anonymous.
func (v *Variable) String() string {
	if v.name != "" {
		return v.name
	}
	//
	return fmt.Sprintf("#%d", v.id)
}
