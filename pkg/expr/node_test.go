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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Node_LeafIr(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Named("a")
	//
	leaf := NewLeaf(a)
	//
	assert.Same(t, a, leaf.Ir())
	assert.Same(t, a, leaf.Variable())
	assert.Empty(t, leaf.Children())
	// No auxiliary variable allocated
	assert.Equal(t, uint(1), r.Len())
}

func Test_Node_NotIr(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Named("a")
	//
	not, err := r.NewNot(NewLeaf(a))
	require.NoError(t, err)
	//
	assert.Equal(t, Id(1), not.Ir().Id())
	assert.Equal(t, "_iv1", not.Ir().Name())
	assert.Same(t, a, not.Child().Ir())
	assert.Equal(t, "(not a)", not.String())
}

func Test_Node_BinaryIr(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Named("a")
	b, _ := r.Named("b")
	//
	and, err := r.NewBinary(NewLeaf(a), NewLeaf(b), AND)
	require.NoError(t, err)
	//
	assert.Equal(t, Id(2), and.Ir().Id())
	assert.Equal(t, "_iv2", and.Ir().Name())
	assert.Equal(t, AND, and.Op())
	assert.Same(t, a, and.Lhs().Ir())
	assert.Same(t, b, and.Rhs().Ir())
	assert.Equal(t, "(and a b)", and.String())
}

func Test_Node_ExplicitIr(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Named("a")
	b, _ := r.Named("b")
	c, _ := r.Named("c")
	d, _ := r.Named("d")
	//
	or := NewBinaryWithIr(c, NewLeaf(a), NewLeaf(b), OR)
	not := NewNotWithIr(d, or)
	//
	assert.Same(t, c, or.Ir())
	assert.Same(t, d, not.Ir())
	assert.Equal(t, uint(4), r.Len())
}

func Test_Node_Preconditions(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Named("a")
	//
	assert.Panics(t, func() { NewLeaf(nil) })
	assert.Panics(t, func() { _, _ = r.NewNot(nil) })
	assert.Panics(t, func() { _, _ = r.NewBinary(nil, NewLeaf(a), AND) })
	assert.Panics(t, func() { _, _ = r.NewBinary(NewLeaf(a), nil, AND) })
	assert.Panics(t, func() { _, _ = r.NewBinary(NewLeaf(a), NewLeaf(a), BinaryOp(6)) })
	assert.Panics(t, func() { NewBinaryWithIr(nil, NewLeaf(a), NewLeaf(a), OR) })
	assert.Panics(t, func() { NewNotWithIr(a, nil) })
	// Failed constructions allocate nothing
	assert.Equal(t, uint(1), r.Len())
}

func Test_Node_AllocationFailure(t *testing.T) {
	r := NewRegistry(WithCapacity(1))
	a, _ := r.Named("a")
	//
	not, err := r.NewNot(NewLeaf(a))
	assert.Nil(t, not)
	assert.ErrorIs(t, err, ErrExhausted)
	//
	bin, err := r.NewBinary(NewLeaf(a), NewLeaf(a), XOR)
	assert.Nil(t, bin)
	assert.ErrorIs(t, err, ErrExhausted)
}

func Test_Node_BinaryOps(t *testing.T) {
	names := []string{"and", "or", "xor", "nand", "nor", "nxor"}
	//
	for i, name := range names {
		op, ok := ParseBinaryOp(name)
		assert.True(t, ok)
		assert.Equal(t, BinaryOp(i), op)
		assert.Equal(t, name, op.String())
		assert.True(t, op.IsValid())
	}
	//
	_, ok := ParseBinaryOp("not")
	assert.False(t, ok)
	_, ok = ParseBinaryOp("eq")
	assert.False(t, ok)
	assert.False(t, BinaryOp(6).IsValid())
}

func Test_Node_WalkOrder(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Named("a")
	b, _ := r.Named("b")
	c, _ := r.Named("c")
	// (and (not a) (or b c))
	not, _ := r.NewNot(NewLeaf(a))
	or, _ := r.NewBinary(NewLeaf(b), NewLeaf(c), OR)
	and, _ := r.NewBinary(not, or, AND)
	//
	var visited []string
	//
	Walk(and, func(n Node) { visited = append(visited, n.String()) })
	//
	assert.Equal(t, []string{"c", "b", "(or b c)", "a", "(not a)", "(and (not a) (or b c))"}, visited)
}

func Test_Node_Destroy(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Named("a")
	b, _ := r.Named("b")
	//
	not, _ := r.NewNot(NewLeaf(b))
	xor, _ := r.NewBinary(NewLeaf(a), not, XOR)
	before := r.Len()
	//
	assert.Equal(t, 4, Destroy(xor))
	assert.Nil(t, xor.Lhs())
	assert.Nil(t, xor.Rhs())
	assert.Nil(t, not.Child())
	// Variables survive destruction
	assert.Equal(t, before, r.Len())
	//
	for _, name := range []string{"a", "b", "_iv2", "_iv3"} {
		_, ok := r.LookupName(name)
		assert.True(t, ok, name)
	}
	//
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, 1, Destroy(NewLeaf(a)))
}

func Test_Node_DeepNesting(t *testing.T) {
	const depth = 100000
	//
	r := NewRegistry()
	a, _ := r.Named("a")
	//
	var node Node = NewLeaf(a)
	//
	for i := 0; i < depth; i++ {
		not, err := r.NewNot(node)
		require.NoError(t, err)
		//
		node = not
	}
	//
	count := 0
	Walk(node, func(Node) { count++ })
	assert.Equal(t, depth+1, count)
	assert.Equal(t, depth+1, Destroy(node))
}
