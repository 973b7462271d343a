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
	"errors"
	"math"
)

// INTERMEDIATE_PREFIX is the prefix used for the names of automatically
// allocated intermediate result variables.
const INTERMEDIATE_PREFIX = "_iv"

// ErrExhausted is returned when a registry cannot issue any further
// identities.
var ErrExhausted = errors.New("variable identities exhausted")

// ErrTornDown is returned when a registry is used after (or torn down more
// than once following) a call to Teardown.
var ErrTornDown = errors.New("registry already torn down")

// Registry owns every variable of a single problem instance.  Identities are
// issued monotonically starting from zero, regardless of whether a variable is
// named or anonymous, and are never reused.  A registry is not safe for
// concurrent use.
type Registry struct {
	// Variables in issuance order, hence indexed by their identity.
	vars []*Variable
	// Maps names onto the identity of the variable which holds them.
	names map[string]Id
	// Maximum number of identities this registry may issue.
	capacity uint
	// Set once the registry has been torn down.
	closed bool
}

// RegistryOption configures a registry on construction.
type RegistryOption func(*Registry)

// WithCapacity bounds the number of identities which a registry will issue.
// Once reached, further allocations fail with ErrExhausted.
func WithCapacity(n uint) RegistryOption {
	return func(r *Registry) {
		r.capacity = n
	}
}

// NewRegistry constructs an empty registry.
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		names:    make(map[string]Id),
		capacity: math.MaxUint32,
	}
	//
	for _, option := range options {
		option(r)
	}
	//
	return r
}

// Len returns the number of identities issued so far.
func (r *Registry) Len() uint {
	return uint(len(r.vars))
}

// Variables returns every variable in issuance order.
func (r *Registry) Variables() []*Variable {
	return r.vars
}

// Anonymous allocates a fresh variable without a name whose domain is
// unrestricted.
func (r *Registry) Anonymous() (*Variable, error) {
	if r.closed {
		return nil, ErrTornDown
	} else if r.Len() >= r.capacity {
		return nil, ErrExhausted
	}
	//
	v := newVariable(Id(len(r.vars)))
	r.vars = append(r.vars, v)
	//
	return v, nil
}

// Named returns the variable with the given name, allocating it when no such
// variable exists yet.  When the name is already known the existing variable
// is returned (with the same identity) and its stored name is replaced by the
// given content.
func (r *Registry) Named(name string) (*Variable, error) {
	if r.closed {
		return nil, ErrTornDown
	}
	//
	if id, ok := r.names[name]; ok {
		v := r.vars[id]
		v.name = name
		//
		return v, nil
	}
	//
	v, err := r.Anonymous()
	if err != nil {
		return nil, err
	}
	//
	v.name = name
	r.names[name] = v.id
	//
	return v, nil
}

// Intermediate allocates a fresh variable to hold the result of a composite
// expression node.  Its name is derived from the identity it receives.  The
// variable is always new: should a user variable already carry the same name,
// name lookup continues to resolve to that earlier variable.
func (r *Registry) Intermediate() (*Variable, error) {
	v, err := r.Anonymous()
	if err != nil {
		return nil, err
	}
	//
	v.name = IntermediateName(v.id)
	//
	if _, ok := r.names[v.name]; !ok {
		r.names[v.name] = v.id
	}
	//
	return v, nil
}

// Lookup returns the variable with the given identity, if it exists.
func (r *Registry) Lookup(id Id) (*Variable, bool) {
	if r.closed || uint(id) >= r.Len() {
		return nil, false
	}
	//
	return r.vars[id], true
}

// LookupName returns the variable with the given name, if it exists.
func (r *Registry) LookupName(name string) (*Variable, bool) {
	if r.closed {
		return nil, false
	}
	//
	id, ok := r.names[name]
	if !ok {
		return nil, false
	}
	//
	return r.vars[id], true
}

// Teardown releases every variable and name held by this registry.  It may be
// called only once; subsequent calls report ErrTornDown.
func (r *Registry) Teardown() error {
	if r.closed {
		return ErrTornDown
	}
	//
	r.closed = true
	r.vars = nil
	r.names = nil
	//
	return nil
}

// IntermediateName returns the name given to the intermediate variable with the
// given identity, which is "_iv" followed by the decimal identity.
func IntermediateName(id Id) string {
	var (
		n   = digits(uint64(id))
		buf = make([]byte, len(INTERMEDIATE_PREFIX)+n)
		val = uint64(id)
	)
	//
	copy(buf, INTERMEDIATE_PREFIX)
	//
	for i := len(buf) - 1; i >= len(INTERMEDIATE_PREFIX); i-- {
		buf[i] = byte('0' + val%10)
		val /= 10
	}
	//
	return string(buf)
}

// digits returns the number of decimal digits needed to print n.  Zero has one
// digit.
func digits(n uint64) int {
	count := 1
	//
	for n >= 10 {
		n /= 10
		count++
	}
	//
	return count
}
