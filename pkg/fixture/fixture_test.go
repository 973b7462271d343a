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
	"testing"

	"github.com/consensys/go-satexpr/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `
variables:
  - name: a
    domain: [false, true]
  - name: b
  - name: c
    expect: [true, false]
assignments:
  - target: c
    expr:
      and:
        - a
        - not: {var: b}
  - target: d
    expr: {nxor: [c, a]}
`

func Test_Fixture_Parse(t *testing.T) {
	program, err := Parse([]byte(example))
	require.NoError(t, err)
	//
	r := program.Registry()
	// a=0, b=1, c=2, (not b)=3, (and ...)=4, d=5, (nxor ...)=6
	assert.Equal(t, uint(7), r.Len())
	//
	a, _ := r.LookupName("a")
	b, _ := r.LookupName("b")
	c, _ := r.LookupName("c")
	d, _ := r.LookupName("d")
	assert.Equal(t, expr.Id(0), a.Id())
	assert.Equal(t, expr.Id(1), b.Id())
	assert.Equal(t, expr.Id(2), c.Id())
	assert.Equal(t, expr.Id(5), d.Id())
	//
	admits0, admits1 := a.Domain()
	assert.False(t, admits0)
	assert.True(t, admits1)
	assert.Equal(t, expr.Expectation{Checked: true, Expect0: true, Expect1: false}, c.Expectation())
	assert.False(t, b.Expectation().Checked)
	//
	assignments := program.Assignments()
	require.Len(t, assignments, 2)
	assert.Equal(t, "c := (and a (not b))", assignments[0].String())
	assert.Equal(t, "d := (nxor c a)", assignments[1].String())
	assert.Equal(t, "_iv3", assignments[0].Expression().(*expr.Binary).Rhs().Ir().Name())
	assert.Equal(t, "_iv4", assignments[0].Expression().Ir().Name())
	assert.Equal(t, "_iv6", assignments[1].Expression().Ir().Name())
}

func Test_Fixture_Errors(t *testing.T) {
	cases := map[string]string{
		"missing name":      "variables:\n  - domain: [true, true]\n",
		"bad pair":          "variables:\n  - name: a\n    domain: [true]\n",
		"missing target":    "assignments:\n  - expr: a\n",
		"missing expr":      "assignments:\n  - target: a\n",
		"unknown operator":  "assignments:\n  - target: a\n    expr: {implies: [a, b]}\n",
		"wrong arity":       "assignments:\n  - target: a\n    expr: {and: [a]}\n",
		"two operators":     "assignments:\n  - target: a\n    expr: {and: [a, b], or: [a, b]}\n",
		"bad var":           "assignments:\n  - target: a\n    expr: {var: [a]}\n",
		"malformed":         "variables: [",
		"nested bad branch": "assignments:\n  - target: a\n    expr: {or: [a, {not: {eq: [a, b]}}]}\n",
	}
	//
	for name, input := range cases {
		_, err := Parse([]byte(input))
		assert.Error(t, err, name)
	}
}

func Test_Fixture_ErrorPath(t *testing.T) {
	_, err := Parse([]byte("assignments:\n  - target: a\n    expr: {or: [a, {not: {eq: [a, b]}}]}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assignments[0].expr")
	assert.Contains(t, err.Error(), "or[1]")
	assert.Contains(t, err.Error(), "unknown operator \"eq\"")
}

func Test_Fixture_ReadMissingFile(t *testing.T) {
	_, err := ReadFile("does-not-exist.yaml")
	assert.Error(t, err)
}
