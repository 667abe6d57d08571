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

package tunablex

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/jackpap/tunableX/apis"
	"github.com/jackpap/tunableX/builder"
	"github.com/jackpap/tunableX/config"
)

// init initializes the global state with the default config, registry, and
// resolver.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("tunablex: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("tunablex: builder returned nil resolver")
)

// Register appends a tunable entry to the global registry.
// This is a convenience wrapper around the global registry.
func Register(e apis.Entry) error {
	return st.Load().reg.Register(e)
}

// ByNamespace returns all global entries under the given namespace.
func ByNamespace(ns string) []apis.Entry {
	return st.Load().reg.ByNamespace(ns)
}

// ByFunc returns all global entries owned by fn, across every namespace the
// function was split into, in registration order.
func ByFunc(fn any) []apis.Entry {
	return st.Load().reg.ByFunc(fn)
}

// Section resolves a dotted namespace against a configuration object using
// the global resolver and configuration. The empty namespace returns root.
func Section(root any, namespace string) (any, bool) {
	s := st.Load()
	return s.res.Resolve(root, namespace, s.cfg)
}

// SectionMap views a resolved section as a field name -> value mapping using
// the global resolver and configuration.
func SectionMap(section any) (map[string]any, bool) {
	s := st.Load()
	return s.res.SectionMap(section, s.cfg)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the unpinned
// layers through the current builder.
func SetConfig(cfg apis.Config) {
	publish(func(old *state) *state {
		n := old.clone()
		n.cfg = cfg
		return rebuild(n)
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global registry to reg and pins it: later SetConfig
// calls will not rebuild the registry until UnpinRegistry. The resolver is
// rebuilt against the new registry unless it is pinned. Nil is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	publish(func(old *state) *state {
		n := old.clone()
		n.reg = reg
		n.preg = true
		return rebuild(n)
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global resolver to res and pins it. No other layer is
// rebuilt. Nil is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	publish(func(old *state) *state {
		n := old.clone()
		n.res = res
		n.pres = true
		return n
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the unpinned layers
// with it. Nil is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	publish(func(old *state) *state {
		n := old.clone()
		n.bld = b
		return rebuild(n)
	})
}

// SetExt replaces the opaque extension payload and rebuilds the unpinned
// layers so custom builders can act on it.
func SetExt[T any](ext T) {
	publish(func(old *state) *state {
		n := old.clone()
		n.ext = ext
		return rebuild(n)
	})
}

// ExtAs returns the global extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// SetAll explicitly sets all global state components in one shot.
//
// Nil arguments leave the corresponding component unchanged, except for ext
// which is always replaced. A registry or resolver passed explicitly becomes
// pinned; passing nil unpins that layer and rebuilds it through the builder.
// This is mainly used by tests to reach a clean deterministic state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	publish(func(old *state) *state {
		n := old.clone()
		if cfg != nil {
			n.cfg = *cfg
		}
		n.ext = ext
		if bld != nil {
			n.bld = bld
		}
		n.preg = reg != nil
		if reg != nil {
			n.reg = reg
		}
		n.pres = res != nil
		if res != nil {
			n.res = res
		}
		return rebuild(n)
	})
}

// IsRegistryPinned returns whether the global registry is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global registry immune to rebuilds.
func PinRegistry() {
	setPins(func(n *state) { n.preg = true })
}

// UnpinRegistry makes the global registry rebuildable again.
func UnpinRegistry() {
	setPins(func(n *state) { n.preg = false })
}

// IsResolverPinned returns whether the global resolver is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global resolver immune to rebuilds.
func PinResolver() {
	setPins(func(n *state) { n.pres = true })
}

// UnpinResolver makes the global resolver rebuildable again.
func UnpinResolver() {
	setPins(func(n *state) { n.pres = false })
}

// setPins publishes a snapshot that differs only in pin flags.
func setPins(mod func(*state)) {
	publish(func(old *state) *state {
		n := old.clone()
		mod(n)
		return n
	})
}

// publish serializes writers so we never publish partially-built snapshots,
// then swaps the new state in atomically.
func publish(mut func(old *state) *state) {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(mut(st.Load()))
}

// rebuild derives the unpinned layers of s through its builder, using the
// layers currently held by s as the previous instances. It panics when the
// builder returns nil for a required layer.
func rebuild(s *state) *state {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, s.reg, s.ext)
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, s.reg, s.res, s.ext)
	}
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	return s
}

// buildMu serializes writers (reconfigurations/swaps).
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers clone, modify the clone, and swap it in.
type state struct {
	// cfg is the global traversal configuration.
	cfg apis.Config
	// ext is the opaque extension payload handed to the builder.
	ext any
	// reg is the global tunable registry.
	reg apis.Registry
	// res is the global namespace path resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether the registry is pinned (immutable).
	preg bool
	// pres indicates whether the resolver is pinned (immutable).
	pres bool
}

// clone returns a mutable copy of s for the next snapshot.
func (s *state) clone() *state {
	c := *s
	return &c
}
