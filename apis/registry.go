/*
   Copyright 2026 The tunableX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "reflect"

// Registry is the process-wide, append-only store of tunable registrations.
// It is populated once at load time and read many times thereafter; there is
// no delete operation. Implementations must support unlimited concurrent
// readers once registration is complete.
type Registry interface {
	// Register appends an entry. Registering the same (function, namespace)
	// pair again appends a duplicate; readers that merge entries in
	// registration order therefore prefer the last registration.
	Register(e Entry) error
	// ByNamespace returns all entries registered under the given namespace.
	ByNamespace(ns string) []Entry
	// ByFunc returns all entries owned by fn, across every namespace it was
	// split into, in registration order. Owner identity is the function's
	// code pointer, so distinct closures created from the same function
	// literal share one identity and see each other's entries.
	ByFunc(fn any) []Entry
	// Namespaces returns the distinct namespaces with at least one entry.
	Namespaces() []string
	// Entries returns a snapshot for diagnostics/docs, in registration order.
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is one registration unit: a function, one of its namespaces, and the
// schema of the tunable parameters assigned to that namespace. A function
// whose parameters span several namespaces has one Entry per namespace.
type Entry struct {
	// ID uniquely identifies this registration. Assigned by the registry
	// when left empty.
	ID string
	// Fn is the original function and serves as the owner identity.
	Fn any
	// Sig is the reflected signature of Fn.
	Sig reflect.Type
	// Namespace is the dotted configuration section path; "" is the root.
	Namespace string
	// Schema maps parameter names to their declared type and default.
	Schema Schema
	// Apps are optional tags grouping functions per executable/app.
	Apps []string
}

// Schema describes the tunable parameters of one entry.
type Schema map[string]FieldSpec

// FieldSpec is the declared shape of a single tunable parameter.
type FieldSpec struct {
	// Type is the parameter's type in the owning function's signature.
	Type reflect.Type
	// Default is the declared default value, nil when Required.
	Default any
	// Required marks a parameter selected without a default value.
	Required bool
}

// Clone returns a copy of the schema safe to hold across registrations.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
