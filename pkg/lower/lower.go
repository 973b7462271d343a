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
package lower

import (
	"fmt"

	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/consensys/go-satexpr/pkg/matrix"
	log "github.com/sirupsen/logrus"
)

// Stats summarises the calls made against a matrix during lowering.
type Stats struct {
	Domains   uint
	Relations uint
}

// Add accumulates two sets of statistics.
func (s Stats) Add(o Stats) Stats {
	return Stats{s.Domains + o.Domains, s.Relations + o.Relations}
}

// CompileExpression lowers an expression tree into a given matrix.  Each leaf
// occurrence restricts the domain of its variable according to the variable's
// hints, whilst each internal node emits exactly one relation tying its result
// variable to those of its children.  Children are always lowered before their
// parent, with right operands lowered before left operands.  Negation is
// encoded as a self-NAND.
func CompileExpression(m matrix.Matrix, root expr.Node) Stats {
	var stats Stats
	//
	expr.Walk(root, func(node expr.Node) {
		switch n := node.(type) {
		case *expr.Leaf:
			restrict(m, n.Variable())
			stats.Domains++
		case *expr.Not:
			child := n.Child().Ir().Id()
			m.AddRelation(n.Ir().Id(), child, matrix.NAND, child)
			stats.Relations++
		case *expr.Binary:
			m.AddRelation(n.Ir().Id(), n.Lhs().Ir().Id(), matrix.FromBinary(n.Op()), n.Rhs().Ir().Id())
			stats.Relations++
		default:
			panic(fmt.Sprintf("unknown expression node %s", node.String()))
		}
	})
	//
	return stats
}

// CompileAssignment lowers an assignment into a given matrix.  The target's
// domain is restricted first, followed by the expression itself.  Finally,
// unless the target already is the expression's result variable, an equality
// relation binds the two together.
func CompileAssignment(m matrix.Matrix, assignment *expr.Assignment) Stats {
	var (
		target = assignment.Target()
		root   = assignment.Expression()
		stats  = Stats{Domains: 1}
	)
	//
	restrict(m, target)
	//
	stats = stats.Add(CompileExpression(m, root))
	//
	if !assignment.IsStructural() {
		ir := root.Ir().Id()
		m.AddRelation(target.Id(), ir, matrix.EQ, ir)
		stats.Relations++
	}
	//
	return stats
}

// CompileProgram lowers every assignment of a program into a given matrix, in
// declaration order.
func CompileProgram(m matrix.Matrix, program *expr.Program) Stats {
	var stats Stats
	//
	for _, assignment := range program.Assignments() {
		log.Debugf("lowering %s", assignment.String())
		//
		stats = stats.Add(CompileAssignment(m, assignment))
	}
	//
	log.Debugf("lowered %d assignments into %d domain restrictions and %d relations",
		len(program.Assignments()), stats.Domains, stats.Relations)
	//
	return stats
}

func restrict(m matrix.Matrix, v *expr.Variable) {
	admits0, admits1 := v.Domain()
	m.SetDomain(v.Id(), admits0, admits1)
}
