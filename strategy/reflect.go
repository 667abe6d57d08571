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

// NewReflectStrategy creates an apis.Strategy that traverses struct-backed
// configuration objects via reflection, with memoized field lookups.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback for typed configuration structs.
// It unwraps pointers/interfaces, matches fields by yaml/json tag, exact
// name, then folded name, and memoizes the (type, name) -> field index
// resolution in utils/reflect.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// TryStep returns the struct field of v addressed by name.
func (reflectStrategy) TryStep(v any, name string, cfg apis.Config) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := uref.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, false
	}
	idx, ok := uref.FieldIndex(rv.Type(), name, cfg)
	if !ok {
		return nil, false
	}
	fv, err := rv.FieldByIndexErr(idx)
	if err != nil {
		// nil embedded pointer on the path
		return nil, false
	}
	return fv.Interface(), true
}

// TryMap renders v's exported fields as a mapping keyed by tag name (when
// cfg.UseFieldTags) or Go field name.
func (reflectStrategy) TryMap(v any, cfg apis.Config) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := uref.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, false
	}
	t := rv.Type()
	out := make(map[string]any)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			continue
		}
		out[uref.FieldKey(f, cfg.UseFieldTags)] = fv.Interface()
	}
	return out, true
}
