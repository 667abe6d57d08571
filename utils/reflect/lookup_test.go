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

package reflect_test

import (
	"reflect"
	"testing"

	"github.com/jackpap/tunableX/config"
	uref "github.com/jackpap/tunableX/utils/reflect"
)

func TestFold(t *testing.T) {
	cases := []struct{ in, want string }{
		{"hidden_units", "hiddenunits"},
		{"HiddenUnits", "hiddenunits"},
		{"HIDDEN_UNITS", "hiddenunits"},
		{"scale", "scale"},
		{"", ""},
	}
	for _, c := range cases {
		if got := uref.Fold(c.in); got != c.want {
			t.Fatalf("Fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFieldKey(t *testing.T) {
	type s struct {
		A int `yaml:"alpha,omitempty"`
		B int `json:"beta"`
		C int `yaml:"-"`
		D int
	}
	st := reflect.TypeOf(s{})

	cases := []struct {
		field   string
		useTags bool
		want    string
	}{
		{"A", true, "alpha"},
		{"A", false, "A"},
		{"B", true, "beta"},
		{"C", true, "C"}, // "-" means no tag name
		{"D", true, "D"},
	}
	for _, c := range cases {
		f, _ := st.FieldByName(c.field)
		if got := uref.FieldKey(f, c.useTags); got != c.want {
			t.Fatalf("FieldKey(%s, %v) = %q, want %q", c.field, c.useTags, got, c.want)
		}
	}
}

func TestFieldIndex_MatchOrder(t *testing.T) {
	cfg := config.DefaultConfig()

	type s struct {
		HiddenUnits int `yaml:"hidden_units"`
		Scale       float64
	}
	st := reflect.TypeOf(s{})

	// Tag name wins.
	idx, ok := uref.FieldIndex(st, "hidden_units", cfg)
	if !ok || idx[0] != 0 {
		t.Fatalf("tag lookup: got (%v, %v)", idx, ok)
	}
	// Exact Go name.
	idx, ok = uref.FieldIndex(st, "Scale", cfg)
	if !ok || idx[0] != 1 {
		t.Fatalf("name lookup: got (%v, %v)", idx, ok)
	}
	// Folded fallback.
	idx, ok = uref.FieldIndex(st, "SCALE", cfg)
	if !ok || idx[0] != 1 {
		t.Fatalf("folded lookup: got (%v, %v)", idx, ok)
	}
	// Misses are memoized too; ask twice.
	if _, ok := uref.FieldIndex(st, "nope", cfg); ok {
		t.Fatalf("miss resolved")
	}
	if _, ok := uref.FieldIndex(st, "nope", cfg); ok {
		t.Fatalf("memoized miss resolved")
	}
}

func TestFieldIndex_RespectsKnobs(t *testing.T) {
	type s struct {
		HiddenUnits int `yaml:"hidden_units"`
	}
	st := reflect.TypeOf(s{})

	strict := config.NewConfig(config.WithCaseInsensitive(false), config.WithFieldTags(false))
	if _, ok := uref.FieldIndex(st, "hidden_units", strict); ok {
		t.Fatalf("tag matched with UseFieldTags off")
	}
	loose := config.DefaultConfig()
	if _, ok := uref.FieldIndex(st, "hidden_units", loose); !ok {
		t.Fatalf("tag lookup failed after a strict miss was cached")
	}
}

func TestFieldIndex_EmbeddedFields(t *testing.T) {
	type base struct {
		Tolerance float64 `yaml:"tolerance"`
	}
	type derived struct {
		base
		Extra int
	}
	cfg := config.DefaultConfig()

	idx, ok := uref.FieldIndex(reflect.TypeOf(derived{}), "tolerance", cfg)
	if !ok {
		t.Fatalf("embedded field not found")
	}
	v := derived{base: base{Tolerance: 0.25}}
	got := reflect.ValueOf(v).FieldByIndex(idx).Float()
	if got != 0.25 {
		t.Fatalf("embedded field value = %v, want 0.25", got)
	}
}

func TestIndirect(t *testing.T) {
	x := 42
	p := &x
	pp := &p

	v := uref.Indirect(reflect.ValueOf(pp))
	if !v.IsValid() || v.Kind() != reflect.Int || v.Int() != 42 {
		t.Fatalf("Indirect(**int) = %v", v)
	}

	var nilp *int
	if got := uref.Indirect(reflect.ValueOf(nilp)); got.IsValid() {
		t.Fatalf("Indirect(nil pointer) = %v, want invalid", got)
	}
}
