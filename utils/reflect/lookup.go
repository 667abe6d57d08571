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

package reflect

import (
	"reflect"
	"strings"
	"sync"

	"github.com/jackpap/tunableX/apis"
)

// Fold normalizes a name for tolerant matching: lower-cased with underscores
// stripped, so "hidden_units" and "HiddenUnits" fold to the same key.
func Fold(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			continue
		}
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// FieldKey returns the logical name a struct field is addressed by: the yaml
// or json tag name when useTags is set and a tag is present, otherwise the
// Go field name.
func FieldKey(f reflect.StructField, useTags bool) string {
	if useTags {
		for _, tag := range []string{"yaml", "json"} {
			if v, ok := f.Tag.Lookup(tag); ok {
				name := strings.Split(v, ",")[0]
				if name != "" && name != "-" {
					return name
				}
			}
		}
	}
	return f.Name
}

// fieldCacheKey ensures memoization respects all config knobs that affect lookup.
type fieldCacheKey struct {
	t       reflect.Type
	name    string
	useTags bool
	fold    bool
}

// fieldIndexCache caches resolved field indexes by (type, name, config knobs).
var fieldIndexCache sync.Map // key: fieldCacheKey, val: []int (nil = miss)

// FieldIndex finds the index of the exported struct field addressed by name
// on t, honoring tags and folded matching according to cfg. Results are
// memoized per (type, name, knobs).
func FieldIndex(t reflect.Type, name string, cfg apis.Config) ([]int, bool) {
	key := fieldCacheKey{t: t, name: name, useTags: cfg.UseFieldTags, fold: cfg.CaseInsensitive}
	if v, ok := fieldIndexCache.Load(key); ok {
		idx, hit := v.([]int)
		return idx, hit && idx != nil
	}

	idx := findField(t, name, cfg)
	fieldIndexCache.Store(key, idx)
	return idx, idx != nil
}

// findField scans visible exported fields for a tag match, then an exact name
// match, then a folded match.
func findField(t reflect.Type, name string, cfg apis.Config) []int {
	if t.Kind() != reflect.Struct {
		return nil
	}
	fields := reflect.VisibleFields(t)

	if cfg.UseFieldTags {
		for _, f := range fields {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			if FieldKey(f, true) == name && FieldKey(f, true) != f.Name {
				return f.Index
			}
		}
	}
	for _, f := range fields {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if f.Name == name {
			return f.Index
		}
	}
	if cfg.CaseInsensitive {
		want := Fold(name)
		for _, f := range fields {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			if Fold(FieldKey(f, cfg.UseFieldTags)) == want || Fold(f.Name) == want {
				return f.Index
			}
		}
	}
	return nil
}

// Indirect unwraps pointers and interfaces until a concrete, non-pointer
// value remains. Returns an invalid Value for nil chains.
func Indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
