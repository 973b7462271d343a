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
package sat

import (
	"context"
	"errors"
	"time"

	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/consensys/go-satexpr/pkg/matrix"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	log "github.com/sirupsen/logrus"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// POLL_INTERVAL determines how often a running solve checks for cancellation.
const POLL_INTERVAL = 5 * time.Millisecond

// ErrIncomplete is returned when solving was cancelled before an outcome was
// reached.
var ErrIncomplete = errors.New("cancelled before solving completed")

// Matrix is an implication matrix backed by the gini SAT solver.  Every
// relation is encoded as clauses over one solver variable per identity.  Once
// solved, a value is considered to remain in the domain of a variable exactly
// when some satisfying assignment gives the variable that value.
type Matrix struct {
	g *gini.Gini
	// A priori domains, indexed by identity.
	domains map[expr.Id][2]bool
	// One more than the largest identity occurring in any clause.
	extent uint
	// Set when some domain was restricted to nothing.
	empty bool
	// Solving state
	solved  bool
	outcome int
	ctx     context.Context
	// Post-solve admissibility, computed on demand.
	admissible map[z.Lit]bool
	// Number of relations added
	relations uint
}

// New constructs an empty matrix.
func New() *Matrix {
	return &Matrix{
		g:          gini.New(),
		domains:    make(map[expr.Id][2]bool),
		admissible: make(map[z.Lit]bool),
	}
}

// SetDomain implementation for the matrix.Matrix interface.  Restricting a
// domain more than once intersects the restrictions.
func (p *Matrix) SetDomain(id expr.Id, admits0 bool, admits1 bool) {
	p.invalidate()
	//
	if d, ok := p.domains[id]; ok {
		admits0, admits1 = admits0 && d[0], admits1 && d[1]
	}
	//
	p.domains[id] = [2]bool{admits0, admits1}
	//
	switch {
	case !admits0 && !admits1:
		p.empty = true
	case !admits0:
		p.clause(litOf(id))
	case !admits1:
		p.clause(litOf(id).Not())
	}
}

// AddRelation implementation for the matrix.Matrix interface.  The relation is
// encoded by its truth table: for each combination of operand values, one
// clause forces the result accordingly.
func (p *Matrix) AddRelation(result expr.Id, left expr.Id, op matrix.Op, right expr.Id) {
	p.invalidate()
	//
	var (
		r = litOf(result)
		a = litOf(left)
		b = litOf(right)
	)
	//
	for _, va := range []bool{false, true} {
		for _, vb := range []bool{false, true} {
			// (a != va) || (b != vb) || (r == op(va,vb))
			p.clause(polarise(a, !va), polarise(b, !vb), polarise(r, op.Eval(va, vb)))
		}
	}
	//
	p.relations++
}

// ValueInDomain implementation for the matrix.Matrix interface.  Prior to
// solving this reports the a priori domain.  Afterwards, it reports whether
// some satisfying assignment gives the variable the value.
func (p *Matrix) ValueInDomain(id expr.Id, value bool) bool {
	if !p.solved {
		return p.apriori(id, value)
	} else if p.outcome != satisfiable {
		return false
	} else if uint(id) >= p.extent {
		// Not constrained by any clause
		return p.apriori(id, value)
	}
	//
	m := polarise(litOf(id), value)
	//
	if admits, ok := p.admissible[m]; ok {
		return admits
	}
	//
	p.g.Assume(m)
	outcome := p.solve(p.ctx)
	admits := outcome == satisfiable
	//
	if outcome != satisfiable && outcome != unsatisfiable {
		log.Warnf("solving cancelled whilst querying %d, treating %t as inadmissible", id, value)
	} else {
		p.admissible[m] = admits
	}
	//
	return admits
}

// Solve runs the solver over all constraints added so far.  This reports
// whether or not the constraints are satisfiable.  Cancelling the context
// interrupts solving (including any subsequent domain queries), in which
// case ErrIncomplete is returned.
func (p *Matrix) Solve(ctx context.Context) (bool, error) {
	p.invalidate()
	p.ctx = ctx
	//
	if p.empty {
		p.solved, p.outcome = true, unsatisfiable
		return false, nil
	}
	//
	outcome := p.solve(ctx)
	//
	if outcome != satisfiable && outcome != unsatisfiable {
		return false, ErrIncomplete
	}
	//
	p.solved, p.outcome = true, outcome
	//
	if outcome == satisfiable {
		// Record values from the model found
		for i := uint(0); i < p.extent; i++ {
			m := litOf(expr.Id(i))
			if !p.g.Value(m) {
				m = m.Not()
			}
			//
			p.admissible[m] = true
		}
	}
	//
	log.Debugf("solved %d relations over %d solver variables (satisfiable=%t)", p.relations, p.extent,
		outcome == satisfiable)
	//
	return outcome == satisfiable, nil
}

// Solved checks whether this matrix has been solved since its last
// modification.
func (p *Matrix) Solved() bool {
	return p.solved
}

func (p *Matrix) solve(ctx context.Context) int {
	if ctx == nil || ctx.Done() == nil {
		return p.g.Solve()
	}
	//
	s := p.g.GoSolve()
	ticker := time.NewTicker(POLL_INTERVAL)
	//
	defer ticker.Stop()
	//
	for {
		if outcome, done := s.Test(); done {
			return outcome
		}
		//
		select {
		case <-ctx.Done():
			return s.Stop()
		case <-ticker.C:
		}
	}
}

func (p *Matrix) apriori(id expr.Id, value bool) bool {
	d, ok := p.domains[id]
	if !ok {
		return true
	} else if value {
		return d[1]
	}
	//
	return d[0]
}

// Adding constraints discards any previous solution.
func (p *Matrix) invalidate() {
	if p.solved {
		p.solved = false
		p.admissible = make(map[z.Lit]bool)
	}
}

// Add a clause, dropping duplicate literals.  Tautologies are skipped
// entirely.
func (p *Matrix) clause(ms ...z.Lit) {
	lits := make([]z.Lit, 0, len(ms))
	//
	for _, m := range ms {
		duplicate := false
		//
		for _, n := range lits {
			if n == m {
				duplicate = true
			} else if n == m.Not() {
				return
			}
		}
		//
		if !duplicate {
			lits = append(lits, m)
		}
	}
	//
	for _, m := range lits {
		if v := uint(m.Var()); v > p.extent {
			p.extent = v
		}
		//
		p.g.Add(m)
	}
	//
	p.g.Add(z.LitNull)
}

// Solver variables start at one, whilst identities start at zero.
func litOf(id expr.Id) z.Lit {
	return z.Var(id + 1).Pos()
}

// polarise returns m when value holds, and its negation otherwise.
func polarise(m z.Lit, value bool) z.Lit {
	if value {
		return m
	}
	//
	return m.Not()
}
