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

package strategy

import (
	"reflect"

	"github.com/jackpap/tunableX/apis"
	uref "github.com/jackpap/tunableX/utils/reflect"
)

// NewMappingStrategy creates an apis.Strategy that traverses string-keyed
// maps: plain nested map[string]any configuration trees and, via reflection,
// any other map kind with string keys.
func NewMappingStrategy() apis.Strategy {
	return mappingStrategy{}
}

// mappingStrategy resolves sections out of mapping-shaped configuration.
type mappingStrategy struct{}

// Ensure mappingStrategy implements apis.Strategy.
var _ apis.Strategy = (*mappingStrategy)(nil)

// TryStep looks name up in a string-keyed map, exactly first, then by folded
// match when cfg.CaseInsensitive is set.
func (mappingStrategy) TryStep(v any, name string, cfg apis.Config) (any, bool) {
	// Common case without reflection.
	if m, ok := v.(map[string]any); ok {
		if child, found := m[name]; found {
			return child, true
		}
		if cfg.CaseInsensitive {
			want := uref.Fold(name)
			for k, child := range m {
				if uref.Fold(k) == want {
					return child, true
				}
			}
		}
		return nil, false
	}

	rv := uref.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if child := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())); child.IsValid() {
		return child.Interface(), true
	}
	if cfg.CaseInsensitive {
		want := uref.Fold(name)
		iter := rv.MapRange()
		for iter.Next() {
			if uref.Fold(iter.Key().String()) == want {
				return iter.Value().Interface(), true
			}
		}
	}
	return nil, false
}

// TryMap copies a string-keyed map into a map[string]any view.
func (mappingStrategy) TryMap(v any, _ apis.Config) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}

	rv := uref.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
