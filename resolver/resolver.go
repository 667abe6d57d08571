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

package resolver

import (
	"strings"

	"github.com/jackpap/tunableX/apis"
	"github.com/jackpap/tunableX/config"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent
// use provided strategies themselves are safe for concurrent calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Resolve steps into root one dot-separated segment at a time. The empty
// namespace resolves to root itself. Any missing segment, an empty segment,
// or a path deeper than cfg.MaxDepth yields (nil, false); resolution is
// deterministic and never raises.
func (r chain) Resolve(root any, namespace string, cfg apis.Config) (any, bool) {
	if root == nil {
		return nil, false
	}
	if namespace == "" {
		return root, true
	}

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	segs := strings.Split(namespace, ".")
	if len(segs) > maxDepth {
		return nil, false
	}

	cur := root
	for _, seg := range segs {
		if seg == "" {
			return nil, false
		}
		next, ok := r.step(cur, seg, cfg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// SectionMap views section as a field name -> value mapping via the first
// strategy that can produce one.
func (r chain) SectionMap(section any, cfg apis.Config) (map[string]any, bool) {
	if section == nil {
		return nil, false
	}
	for _, s := range r.strats {
		if m, ok := s.TryMap(section, cfg); ok {
			return m, true
		}
	}
	return nil, false
}

// step runs strategies in order until one finds the named child.
func (r chain) step(v any, name string, cfg apis.Config) (any, bool) {
	for _, s := range r.strats {
		if child, ok := s.TryStep(v, name, cfg); ok {
			return child, true
		}
	}
	return nil, false
}
