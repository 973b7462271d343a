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
package fixture

import (
	"fmt"
	"os"
	"sort"

	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// File is the on-disk representation of a problem.  Variables are declared in
// the order listed, followed by any variables first mentioned in assignments.
//
//	variables:
//	  - name: a
//	    domain: [true, false]
//	    expect: [true, false]
//	assignments:
//	  - target: c
//	    expr: {and: [a, {not: b}]}
type File struct {
	Variables   []Variable   `yaml:"variables"`
	Assignments []Assignment `yaml:"assignments"`
}

// Variable declares a named variable, optionally with a priori domain hints
// and a post-solve expectation.  Both are pairs giving the admissibility of
// zero and one (respectively).
type Variable struct {
	Name   string `yaml:"name"`
	Domain []bool `yaml:"domain"`
	Expect []bool `yaml:"expect"`
}

// Assignment declares "target := expr".  An expression is either a variable
// name, a single-key map {var: name}, {not: e}, or a single-key map from a
// binary operator (and, or, xor, nand, nor, nxor) onto a list of two
// expressions.
type Assignment struct {
	Target string `yaml:"target"`
	Expr   any    `yaml:"expr"`
}

// ReadFile reads and builds the program described by a fixture file.
func ReadFile(filename string) (*expr.Program, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	//
	program, err := Parse(bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	//
	return program, nil
}

// Parse builds the program described by the contents of a fixture file.
func Parse(bytes []byte) (*expr.Program, error) {
	var file File
	//
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, errors.Wrap(err, "malformed fixture")
	}
	//
	return Build(file)
}

// Build constructs a program from a decoded fixture file.
func Build(file File) (*expr.Program, error) {
	var (
		registry = expr.NewRegistry()
		program  = expr.NewProgram(registry)
	)
	//
	for i, decl := range file.Variables {
		if err := declare(registry, decl); err != nil {
			return nil, errors.Wrapf(err, "variables[%d]", i)
		}
	}
	//
	for i, assign := range file.Assignments {
		if assign.Target == "" {
			return nil, errors.Errorf("assignments[%d]: missing target", i)
		}
		//
		target, err := registry.Named(assign.Target)
		if err != nil {
			return nil, errors.Wrapf(err, "assignments[%d].target", i)
		}
		//
		root, err := build(registry, assign.Expr)
		if err != nil {
			return nil, errors.Wrapf(err, "assignments[%d].expr", i)
		}
		//
		program.Assign(target, root)
	}
	//
	return program, nil
}

func declare(registry *expr.Registry, decl Variable) error {
	if decl.Name == "" {
		return errors.New("missing name")
	}
	//
	v, err := registry.Named(decl.Name)
	if err != nil {
		return err
	}
	//
	if decl.Domain != nil {
		admits0, admits1, err := pair(decl.Domain)
		if err != nil {
			return errors.Wrap(err, "domain")
		}
		//
		v.Restrict(admits0, admits1)
	}
	//
	if decl.Expect != nil {
		expect0, expect1, err := pair(decl.Expect)
		if err != nil {
			return errors.Wrap(err, "expect")
		}
		//
		v.Expect(expect0, expect1)
	}
	//
	return nil
}

func pair(values []bool) (bool, bool, error) {
	if len(values) != 2 {
		return false, false, errors.Errorf("expected pair of booleans, found %d values", len(values))
	}
	//
	return values[0], values[1], nil
}

// Build an expression tree, allocating children before their parent.
func build(registry *expr.Registry, term any) (expr.Node, error) {
	switch t := term.(type) {
	case string:
		return leaf(registry, t)
	case map[string]any:
		if len(t) != 1 {
			return nil, errors.Errorf("expected single operator, found %v", keys(t))
		}
		//
		for key, arg := range t {
			return buildOperator(registry, key, arg)
		}
	case nil:
		return nil, errors.New("missing expression")
	}
	//
	return nil, errors.Errorf("unexpected expression %v", term)
}

func buildOperator(registry *expr.Registry, key string, arg any) (expr.Node, error) {
	switch key {
	case "var":
		name, ok := arg.(string)
		if !ok {
			return nil, errors.Errorf("var: expected name, found %v", arg)
		}
		//
		return leaf(registry, name)
	case "not":
		child, err := build(registry, arg)
		if err != nil {
			return nil, errors.Wrap(err, "not")
		}
		//
		node, err := registry.NewNot(child)
		if err != nil {
			return nil, err
		}
		//
		return node, nil
	}
	//
	op, ok := expr.ParseBinaryOp(key)
	if !ok {
		return nil, errors.Errorf("unknown operator %q", key)
	}
	//
	args, ok := arg.([]any)
	if !ok || len(args) != 2 {
		return nil, errors.Errorf("%s: expected two operands", key)
	}
	//
	lhs, err := build(registry, args[0])
	if err != nil {
		return nil, errors.Wrapf(err, "%s[0]", key)
	}
	//
	rhs, err := build(registry, args[1])
	if err != nil {
		return nil, errors.Wrapf(err, "%s[1]", key)
	}
	//
	node, err := registry.NewBinary(lhs, rhs, op)
	if err != nil {
		return nil, err
	}
	//
	return node, nil
}

func leaf(registry *expr.Registry, name string) (expr.Node, error) {
	if name == "" {
		return nil, errors.New("empty variable name")
	}
	//
	v, err := registry.Named(name)
	if err != nil {
		return nil, err
	}
	//
	return expr.NewLeaf(v), nil
}

func keys(m map[string]any) string {
	names := make([]string, 0, len(m))
	//
	for k := range m {
		names = append(names, k)
	}
	//
	sort.Strings(names)
	//
	return fmt.Sprint(names)
}
