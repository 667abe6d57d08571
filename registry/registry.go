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

package registry

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jackpap/tunableX/apis"
	"github.com/jackpap/tunableX/config"
)

var (
	// ErrNilFunc is returned when an entry has no owning function.
	ErrNilFunc = errors.New("tunablex(registry): nil function provided")
	// ErrNotFunc is returned when an entry's owner is not a function.
	ErrNotFunc = errors.New("tunablex(registry): owner is not a function")
	// ErrEmptySchema is returned when an entry declares no fields.
	ErrEmptySchema = errors.New("tunablex(registry): empty schema provided")
	// ErrNamespaceTooDeep indicates a namespace with more dotted segments
	// than the configured MaxDepth; such an entry could never resolve.
	ErrNamespaceTooDeep = errors.New("tunablex(registry): namespace exceeds max depth")
)

// New constructs a Registry that validates entries according to cfg.
// Only MaxDepth is used here (the matching knobs are resolver concerns).
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return &registry{
		cfg:  cfg,
		byNS: make(map[string][]int),
		byFn: make(map[uintptr][]int),
	}
}

// registry is an append-only Entry store with namespace and owner indexes.
// A plain mutex over slice+maps keeps ByFunc/ByNamespace results ordered by
// registration, which the call-time merge relies on.
type registry struct {
	// cfg is the configuration used for registration validation.
	cfg apis.Config
	// mu guards entries and both indexes.
	mu sync.RWMutex
	// entries holds registrations in arrival order.
	entries []apis.Entry
	// byNS indexes entry positions by namespace.
	byNS map[string][]int
	// byFn indexes entry positions by owning function identity.
	byFn map[uintptr][]int
}

// Register appends an entry after validating it. Malformed entries are
// load-time defects and fail immediately. Re-registering the same
// (function, namespace) pair appends a duplicate; merge loops that walk
// entries in registration order therefore prefer the last registration.
// Owner identity is the code pointer (see ByFunc): closures minted from the
// same function literal register under one identity.
func (r *registry) Register(e apis.Entry) error {
	key, err := funcKey(e.Fn)
	if err != nil {
		return err
	}
	if len(e.Schema) == 0 {
		return ErrEmptySchema
	}
	if depth(e.Namespace) > r.cfg.MaxDepth {
		return ErrNamespaceTooDeep
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Sig == nil {
		e.Sig = reflect.TypeOf(e.Fn)
	}
	e.Schema = e.Schema.Clone()
	e.Apps = append([]string(nil), e.Apps...)

	r.mu.Lock()
	defer r.mu.Unlock()
	pos := len(r.entries)
	r.entries = append(r.entries, e)
	r.byNS[e.Namespace] = append(r.byNS[e.Namespace], pos)
	r.byFn[key] = append(r.byFn[key], pos)
	return nil
}

// ByNamespace returns all entries under ns, in registration order.
func (r *registry) ByNamespace(ns string) []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(r.byNS[ns])
}

// ByFunc returns all entries whose owner is fn, across every namespace it
// was split into, in registration order. Identity is the function's code
// pointer: two closures produced by the same function literal are one owner
// here, captured variables notwithstanding.
func (r *registry) ByFunc(fn any) []apis.Entry {
	key, err := funcKey(fn)
	if err != nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(r.byFn[key])
}

// Namespaces returns the distinct namespaces with at least one entry.
func (r *registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byNS))
	for ns := range r.byNS {
		out = append(out, ns)
	}
	return out
}

// Entries returns a snapshot of all registrations in arrival order.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]apis.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.byNS = make(map[string][]int)
	r.byFn = make(map[uintptr][]int)
}

// collect copies the entries at the given positions. Callers hold r.mu.
func (r *registry) collect(positions []int) []apis.Entry {
	if len(positions) == 0 {
		return nil
	}
	out := make([]apis.Entry, 0, len(positions))
	for _, p := range positions {
		out = append(out, r.entries[p])
	}
	return out
}

// funcKey derives the owner identity of fn: the code pointer of the function
// value. Nil or non-func owners are rejected.
func funcKey(fn any) (uintptr, error) {
	if fn == nil {
		return 0, ErrNilFunc
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return 0, ErrNotFunc
	}
	return v.Pointer(), nil
}

// depth counts the dotted segments of a namespace; the root has depth zero.
func depth(ns string) int {
	if ns == "" {
		return 0
	}
	return strings.Count(ns, ".") + 1
}
