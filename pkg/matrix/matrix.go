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
package matrix

import (
	"fmt"

	"github.com/consensys/go-satexpr/pkg/expr"
)

// Op identifies the kind of relation registered with an implication matrix.
// Observe there is no negation: NOT x is always submitted as the self-NAND
// "x NAND x".
type Op uint8

const (
	// AND relation: result = left & right
	AND Op = iota
	// OR relation: result = left | right
	OR
	// XOR relation: result = left ^ right
	XOR
	// NAND relation: result = !(left & right)
	NAND
	// NOR relation: result = !(left | right)
	NOR
	// EQ relation: result = left (the right operand mirrors the left)
	EQ
	// NXOR relation: result = !(left ^ right)
	NXOR
)

var opNames = [...]string{"AND", "OR", "XOR", "NAND", "NOR", "EQ", "NXOR"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	//
	return fmt.Sprintf("OP(%d)", uint8(op))
}

// Eval computes the value of this relation's right-hand side for given
// operands.
func (op Op) Eval(left, right bool) bool {
	switch op {
	case AND:
		return left && right
	case OR:
		return left || right
	case XOR:
		return left != right
	case NAND:
		return !(left && right)
	case NOR:
		return !(left || right)
	case EQ:
		return left
	case NXOR:
		return left == right
	}
	//
	panic(fmt.Sprintf("unknown relation %d", uint8(op)))
}

// FromBinary maps an expression operator onto the relation which encodes it.
func FromBinary(op expr.BinaryOp) Op {
	switch op {
	case expr.AND:
		return AND
	case expr.OR:
		return OR
	case expr.XOR:
		return XOR
	case expr.NAND:
		return NAND
	case expr.NOR:
		return NOR
	case expr.NXOR:
		return NXOR
	}
	//
	panic(fmt.Sprintf("invalid binary operator %d", uint8(op)))
}

// Matrix is the interface through which lowered constraints reach a constraint
// propagation engine.  Domains are restricted before solving, and can be
// queried both before and after.
type Matrix interface {
	// SetDomain restricts which values a variable may take.
	SetDomain(id expr.Id, admits0 bool, admits1 bool)
	// AddRelation registers the constraint "result = left op right".
	AddRelation(result expr.Id, left expr.Id, op Op, right expr.Id)
	// ValueInDomain checks whether a given value remains admissible for a
	// variable.
	ValueInDomain(id expr.Id, value bool) bool
}

// Relation records a single constraint of the form "result = left op right".
type Relation struct {
	Result expr.Id
	Left   expr.Id
	Op     Op
	Right  expr.Id
}

func (r Relation) String() string {
	return fmt.Sprintf("%d = %d %s %d", r.Result, r.Left, r.Op, r.Right)
}

// Holds checks whether this relation is satisfied by a given assignment of
// values to identities.
func (r Relation) Holds(values func(expr.Id) bool) bool {
	return values(r.Result) == r.Op.Eval(values(r.Left), values(r.Right))
}
