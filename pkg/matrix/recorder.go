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

// CallKind distinguishes the calls recorded by a Recorder.
type CallKind uint8

const (
	// DOMAIN indicates a call to SetDomain
	DOMAIN CallKind = iota
	// RELATION indicates a call to AddRelation
	RELATION
)

// Call is a single recorded call made against a matrix.
type Call struct {
	Kind CallKind
	// Valid for DOMAIN calls only
	Id      expr.Id
	Admits0 bool
	Admits1 bool
	// Valid for RELATION calls only
	Relation Relation
}

// DomainCall constructs the record of a SetDomain call.
func DomainCall(id expr.Id, admits0, admits1 bool) Call {
	return Call{Kind: DOMAIN, Id: id, Admits0: admits0, Admits1: admits1}
}

// RelationCall constructs the record of an AddRelation call.
func RelationCall(result expr.Id, left expr.Id, op Op, right expr.Id) Call {
	return Call{Kind: RELATION, Relation: Relation{result, left, op, right}}
}

func (c Call) String() string {
	if c.Kind == DOMAIN {
		return fmt.Sprintf("domain %d {%t %t}", c.Id, c.Admits0, c.Admits1)
	}
	//
	return fmt.Sprintf("relation %s", c.Relation.String())
}

// Recorder is a matrix which performs no propagation whatsoever.  Instead, it
// records every call made against it in order, whilst tracking the (a priori)
// domain of each variable.  Restricting a domain more than once intersects the
// restrictions.
type Recorder struct {
	calls   []Call
	domains map[expr.Id][2]bool
}

// NewRecorder constructs an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{domains: make(map[expr.Id][2]bool)}
}

// SetDomain implementation for the Matrix interface.
func (p *Recorder) SetDomain(id expr.Id, admits0 bool, admits1 bool) {
	p.calls = append(p.calls, DomainCall(id, admits0, admits1))
	//
	if d, ok := p.domains[id]; ok {
		admits0, admits1 = admits0 && d[0], admits1 && d[1]
	}
	//
	p.domains[id] = [2]bool{admits0, admits1}
}

// AddRelation implementation for the Matrix interface.
func (p *Recorder) AddRelation(result expr.Id, left expr.Id, op Op, right expr.Id) {
	p.calls = append(p.calls, RelationCall(result, left, op, right))
}

// ValueInDomain implementation for the Matrix interface.  Variables never
// restricted admit both values.
func (p *Recorder) ValueInDomain(id expr.Id, value bool) bool {
	d, ok := p.domains[id]
	if !ok {
		return true
	} else if value {
		return d[1]
	}
	//
	return d[0]
}

// Calls returns every call recorded so far, in order.
func (p *Recorder) Calls() []Call {
	return p.calls
}

// Relations returns every relation recorded so far, in order.
func (p *Recorder) Relations() []Relation {
	var relations []Relation
	//
	for _, c := range p.calls {
		if c.Kind == RELATION {
			relations = append(relations, c.Relation)
		}
	}
	//
	return relations
}

// Replay forwards every recorded call, in order, to another matrix.
func (p *Recorder) Replay(m Matrix) {
	for _, c := range p.calls {
		if c.Kind == DOMAIN {
			m.SetDomain(c.Id, c.Admits0, c.Admits1)
		} else {
			m.AddRelation(c.Relation.Result, c.Relation.Left, c.Relation.Op, c.Relation.Right)
		}
	}
}
