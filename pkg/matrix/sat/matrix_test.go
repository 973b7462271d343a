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
	"testing"
	"time"

	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/consensys/go-satexpr/pkg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allOps = []matrix.Op{matrix.AND, matrix.OR, matrix.XOR, matrix.NAND, matrix.NOR, matrix.EQ, matrix.NXOR}

// Fix both operands and check the result is forced to the operator's value.
func Test_Matrix_TruthTables(t *testing.T) {
	for _, op := range allOps {
		for _, a := range []bool{false, true} {
			for _, b := range []bool{false, true} {
				m := New()
				m.SetDomain(0, !a, a)
				m.SetDomain(1, !b, b)
				m.AddRelation(2, 0, op, 1)
				//
				ok, err := m.Solve(context.Background())
				require.NoError(t, err)
				require.True(t, ok)
				//
				expected := op.Eval(a, b)
				assert.Equal(t, !expected, m.ValueInDomain(2, false), "%s(%t,%t)", op, a, b)
				assert.Equal(t, expected, m.ValueInDomain(2, true), "%s(%t,%t)", op, a, b)
			}
		}
	}
}

// Fix the result and check which operand values remain.
func Test_Matrix_BackwardPropagation(t *testing.T) {
	m := New()
	m.SetDomain(2, false, true)
	m.AddRelation(2, 0, matrix.AND, 1)
	//
	ok, err := m.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	// a & b = 1 forces both operands to one
	assert.False(t, m.ValueInDomain(0, false))
	assert.True(t, m.ValueInDomain(0, true))
	assert.False(t, m.ValueInDomain(1, false))
	assert.True(t, m.ValueInDomain(1, true))
}

func Test_Matrix_SelfNand(t *testing.T) {
	m := New()
	m.SetDomain(0, false, true)
	m.AddRelation(1, 0, matrix.NAND, 0)
	//
	ok, err := m.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	//
	assert.True(t, m.ValueInDomain(1, false))
	assert.False(t, m.ValueInDomain(1, true))
}

func Test_Matrix_Unconstrained(t *testing.T) {
	m := New()
	m.AddRelation(2, 0, matrix.OR, 1)
	//
	ok, err := m.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	//
	for id := expr.Id(0); id < 3; id++ {
		assert.True(t, m.ValueInDomain(id, false))
		assert.True(t, m.ValueInDomain(id, true))
	}
	// Never mentioned
	assert.True(t, m.ValueInDomain(10, false))
	assert.True(t, m.ValueInDomain(10, true))
}

func Test_Matrix_Unsatisfiable(t *testing.T) {
	m := New()
	m.SetDomain(0, false, true)
	m.SetDomain(1, false, true)
	m.AddRelation(1, 0, matrix.NAND, 0)
	//
	ok, err := m.Solve(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	//
	assert.False(t, m.ValueInDomain(0, false))
	assert.False(t, m.ValueInDomain(0, true))
}

func Test_Matrix_EmptyDomain(t *testing.T) {
	m := New()
	m.SetDomain(0, true, false)
	m.SetDomain(0, false, true)
	// A priori view reflects the intersection
	assert.False(t, m.ValueInDomain(0, false))
	assert.False(t, m.ValueInDomain(0, true))
	//
	ok, err := m.Solve(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_Matrix_Apriori(t *testing.T) {
	m := New()
	m.SetDomain(0, true, false)
	m.AddRelation(1, 0, matrix.EQ, 0)
	// Before solving only the declared domains are known
	assert.False(t, m.Solved())
	assert.True(t, m.ValueInDomain(0, false))
	assert.False(t, m.ValueInDomain(0, true))
	assert.True(t, m.ValueInDomain(1, true))
	//
	_, err := m.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, m.Solved())
	assert.False(t, m.ValueInDomain(1, true))
	// Further constraints discard the solution
	m.SetDomain(2, true, true)
	assert.False(t, m.Solved())
}

func Test_Matrix_Incremental(t *testing.T) {
	m := New()
	m.AddRelation(2, 0, matrix.XOR, 1)
	//
	ok, err := m.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, m.ValueInDomain(2, true))
	//
	m.SetDomain(0, false, true)
	m.SetDomain(1, false, true)
	//
	ok, err = m.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, m.ValueInDomain(2, false))
	assert.False(t, m.ValueInDomain(2, true))
}

func Test_Matrix_WithDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	//
	m := New()
	m.SetDomain(0, true, false)
	m.AddRelation(1, 0, matrix.NOR, 0)
	//
	ok, err := m.Solve(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, m.ValueInDomain(1, false))
	assert.True(t, m.ValueInDomain(1, true))
}
