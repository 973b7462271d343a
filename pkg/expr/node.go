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

import (
	"fmt"
	"strings"
)

// BinaryOp identifies the operator of a binary expression node.
type BinaryOp uint8

const (
	// AND represents logical conjunction
	AND BinaryOp = iota
	// OR represents logical disjunction
	OR
	// XOR represents exclusive or
	XOR
	// NAND represents negated conjunction
	NAND
	// NOR represents negated disjunction
	NOR
	// NXOR represents negated exclusive or (i.e. equivalence)
	NXOR
)

var binaryOpNames = [...]string{"and", "or", "xor", "nand", "nor", "nxor"}

// IsValid checks whether this is one of the known binary operators.
func (op BinaryOp) IsValid() bool {
	return int(op) < len(binaryOpNames)
}

func (op BinaryOp) String() string {
	if op.IsValid() {
		return binaryOpNames[op]
	}
	//
	return fmt.Sprintf("op(%d)", uint8(op))
}

// ParseBinaryOp returns the operator with the given (lowercase) name.
func ParseBinaryOp(name string) (BinaryOp, bool) {
	for i, n := range binaryOpNames {
		if n == name {
			return BinaryOp(i), true
		}
	}
	//
	return 0, false
}

// Node represents a node in an expression tree.  This is a closed set: the only
// implementations are Leaf, Not and Binary.  Every node owns its children
// exclusively, and refers to (but does not own) the variables it mentions.
type Node interface {
	fmt.Stringer
	// Ir returns the variable which holds the value of this node.
	Ir() *Variable
	// Children returns the immediate subexpressions of this node.
	Children() []Node
	// Seals this interface.
	node()
}

// Leaf is an expression consisting of a single variable.
type Leaf struct {
	variable *Variable
}

// Not is the logical negation of a single subexpression.
type Not struct {
	ir    *Variable
	child Node
}

// Binary applies a binary operator to two subexpressions.
type Binary struct {
	ir  *Variable
	op  BinaryOp
	lhs Node
	rhs Node
}

// NewLeaf constructs a leaf node for a given variable.  The node's result
// variable is the variable itself.
func NewLeaf(v *Variable) *Leaf {
	if v == nil {
		panic("leaf variable required")
	}
	//
	return &Leaf{v}
}

// NewNot constructs the negation of a given child, allocating a fresh result
// variable for it.  The node takes ownership of the child.
func (r *Registry) NewNot(child Node) (*Not, error) {
	if child == nil {
		panic("negated expression required")
	}
	//
	ir, err := r.Intermediate()
	if err != nil {
		return nil, err
	}
	//
	return &Not{ir, child}, nil
}

// NewNotWithIr constructs the negation of a given child whose value is held by
// a given variable.
func NewNotWithIr(ir *Variable, child Node) *Not {
	if ir == nil || child == nil {
		panic("result variable and negated expression required")
	}
	//
	return &Not{ir, child}
}

// NewBinary constructs a binary node, allocating a fresh result variable for
// it.  The node takes ownership of both operands.
func (r *Registry) NewBinary(lhs Node, rhs Node, op BinaryOp) (*Binary, error) {
	checkBinary(lhs, rhs, op)
	//
	ir, err := r.Intermediate()
	if err != nil {
		return nil, err
	}
	//
	return &Binary{ir, op, lhs, rhs}, nil
}

// NewBinaryWithIr constructs a binary node whose value is held by a given
// variable.
func NewBinaryWithIr(ir *Variable, lhs Node, rhs Node, op BinaryOp) *Binary {
	if ir == nil {
		panic("result variable required")
	}
	//
	checkBinary(lhs, rhs, op)
	//
	return &Binary{ir, op, lhs, rhs}
}

func checkBinary(lhs Node, rhs Node, op BinaryOp) {
	if lhs == nil || rhs == nil {
		panic("binary operands required")
	} else if !op.IsValid() {
		panic(fmt.Sprintf("invalid binary operator %d", uint8(op)))
	}
}

// Variable returns the variable of this leaf.
func (p *Leaf) Variable() *Variable {
	return p.variable
}

// Ir returns the variable of this leaf.
func (p *Leaf) Ir() *Variable {
	return p.variable
}

// Children returns nothing as leaves have no children.
func (p *Leaf) Children() []Node {
	return nil
}

func (p *Leaf) String() string {
	return p.variable.String()
}

func (p *Leaf) node() {}

// Ir returns the variable holding the value of this negation.
func (p *Not) Ir() *Variable {
	return p.ir
}

// Child returns the negated subexpression.
func (p *Not) Child() Node {
	return p.child
}

// Children returns the negated subexpression.
func (p *Not) Children() []Node {
	return []Node{p.child}
}

func (p *Not) String() string {
	return fmt.Sprintf("(not %s)", p.child.String())
}

func (p *Not) node() {}

// Ir returns the variable holding the value of this node.
func (p *Binary) Ir() *Variable {
	return p.ir
}

// Op returns the operator of this node.
func (p *Binary) Op() BinaryOp {
	return p.op
}

// Lhs returns the left operand.
func (p *Binary) Lhs() Node {
	return p.lhs
}

// Rhs returns the right operand.
func (p *Binary) Rhs() Node {
	return p.rhs
}

// Children returns the left and right operands (in that order).
func (p *Binary) Children() []Node {
	return []Node{p.lhs, p.rhs}
}

func (p *Binary) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(p.op.String())
	builder.WriteString(" ")
	builder.WriteString(p.lhs.String())
	builder.WriteString(" ")
	builder.WriteString(p.rhs.String())
	builder.WriteString(")")
	//
	return builder.String()
}

func (p *Binary) node() {}

// Walk visits every node of a tree in post-order, with right operands visited
// before left operands.  This is the order in which nodes are lowered.  An
// explicit stack is used, so arbitrarily deep trees can be walked.
func Walk(root Node, visit func(Node)) {
	stack := []walkFrame{{root, false}}
	//
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		//
		if top.expanded {
			visit(top.node)
			continue
		}
		// Revisit once children are done
		stack = append(stack, walkFrame{top.node, true})
		// Children are pushed left to right, hence the right operand is popped
		// first.
		for _, child := range top.node.Children() {
			stack = append(stack, walkFrame{child, false})
		}
	}
}

type walkFrame struct {
	node     Node
	expanded bool
}

// Destroy releases every node record of a tree, children before parents.
// Variables referenced by the tree are untouched.  This returns the number of
// node records released.
func Destroy(root Node) int {
	count := 0
	//
	Walk(root, func(n Node) {
		switch n := n.(type) {
		case *Leaf:
			// Leaves only refer to their variable.
		case *Not:
			n.child = nil
		case *Binary:
			n.lhs, n.rhs = nil, nil
		}
		//
		count++
	})
	//
	return count
}
