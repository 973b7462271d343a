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

// Assignment binds a declared variable to the value of an expression, as in
// "target := expression".  The assignment owns its expression, but not the
// target.
type Assignment struct {
	target     *Variable
	expression Node
}

// NewAssignment constructs an assignment of a given expression to a given
// target variable.
func NewAssignment(target *Variable, expression Node) *Assignment {
	if target == nil || expression == nil {
		panic("assignment requires target and expression")
	}
	//
	return &Assignment{target, expression}
}

// Target returns the variable being assigned.
func (p *Assignment) Target() *Variable {
	return p.target
}

// Expression returns the expression whose value is assigned.
func (p *Assignment) Expression() Node {
	return p.expression
}

// IsStructural checks whether the target is itself the result variable of the
// expression, in which case no separate binding is required.
func (p *Assignment) IsStructural() bool {
	return p.target.Id() == p.expression.Ir().Id()
}

func (p *Assignment) String() string {
	return fmt.Sprintf("%s := %s", p.target.String(), p.expression.String())
}

// Program is a problem instance: a registry of variables together with the
// sequence of assignments made over them, held in declaration order.
type Program struct {
	registry    *Registry
	assignments []*Assignment
}

// NewProgram constructs an empty program over a given registry.
func NewProgram(registry *Registry) *Program {
	return &Program{registry: registry}
}

// Registry returns the registry of this program.
func (p *Program) Registry() *Registry {
	return p.registry
}

// Assignments returns the assignments of this program in declaration order.
func (p *Program) Assignments() []*Assignment {
	return p.assignments
}

// Append adds an assignment to the end of this program.
func (p *Program) Append(assignment *Assignment) {
	if assignment == nil {
		panic("assignment required")
	}
	//
	p.assignments = append(p.assignments, assignment)
}

// Assign is a convenience which constructs an assignment and appends it.
func (p *Program) Assign(target *Variable, expression Node) *Assignment {
	a := NewAssignment(target, expression)
	p.Append(a)
	//
	return a
}

// Destroy releases a given assignment along with its expression tree.  If
// cascade holds then every subsequent assignment is released as well.  No
// variable is released.  This returns the number of node records released.
func (p *Program) Destroy(assignment *Assignment, cascade bool) int {
	var index = -1
	//
	for i, a := range p.assignments {
		if a == assignment {
			index = i
			break
		}
	}
	//
	if index < 0 {
		panic("unknown assignment")
	}
	//
	end := index + 1
	if cascade {
		end = len(p.assignments)
	}
	//
	count := 0
	//
	for _, a := range p.assignments[index:end] {
		count += a.release()
	}
	// Remove released assignments, leaving the remainder in order.
	p.assignments = append(p.assignments[:index], p.assignments[end:]...)
	//
	return count
}

// Teardown releases every assignment and then the registry itself.
func (p *Program) Teardown() error {
	if len(p.assignments) > 0 {
		p.Destroy(p.assignments[0], true)
	}
	//
	return p.registry.Teardown()
}

func (p *Assignment) release() int {
	count := Destroy(p.expression)
	p.expression = nil
	p.target = nil
	//
	return count
}
