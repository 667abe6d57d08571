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

package params_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/jackpap/tunableX/params"
)

func TestNamespace_FromAncestorChain(t *testing.T) {
	main := params.New("Main")
	model := params.New("Model", params.Under(main))
	prep := params.New("Preprocess", params.Under(model))

	if got := main.Namespace(); got != "" {
		t.Fatalf("main namespace = %q, want root (empty)", got)
	}
	if got := model.Namespace(); got != "model" {
		t.Fatalf("model namespace = %q, want %q", got, "model")
	}
	if got := prep.Namespace(); got != "model.preprocess" {
		t.Fatalf("preprocess namespace = %q, want %q", got, "model.preprocess")
	}
}

func TestNamespace_RootNameIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"main", "Main", "MAIN"} {
		root := params.New(name)
		if got := root.Namespace(); got != "" {
			t.Fatalf("New(%q).Namespace() = %q, want root (empty)", name, got)
		}
		child := params.New("Solver", params.Under(root))
		if got := child.Namespace(); got != "solver" {
			t.Fatalf("child of %q: namespace = %q, want %q", name, got, "solver")
		}
	}
}

func TestNamespace_WithoutRootAncestor(t *testing.T) {
	// A chain that never mentions the root name keeps every segment.
	solver := params.New("Solver")
	linear := params.New("Linear", params.Under(solver))
	if got := linear.Namespace(); got != "solver.linear" {
		t.Fatalf("namespace = %q, want %q", got, "solver.linear")
	}
}

func TestNamespace_SegmentsAreLowercased(t *testing.T) {
	root := params.New("Main")
	c := params.New("PreProcess", params.Under(root))
	if got := c.Namespace(); got != "preprocess" {
		t.Fatalf("namespace = %q, want %q", got, "preprocess")
	}
}

func TestNew_EmptyNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("New(\"\") did not panic")
		}
	}()
	params.New("")
}

func TestDeclare_TypesAndDefaults(t *testing.T) {
	c := params.New("Model")

	b := c.Bool("verbose", true)
	i := c.Int("hidden_units", 128)
	f := c.Float("tolerance", 1e-6)
	s := c.String("activation", "relu")
	d := c.Duration("timeout", 5*time.Second)

	if b.Type().Kind() != reflect.Bool || !b.Bool() {
		t.Fatalf("bool field: type %v, default %v", b.Type(), b.Default())
	}
	if i.Type().Kind() != reflect.Int || i.Int() != 128 {
		t.Fatalf("int field: type %v, default %v", i.Type(), i.Default())
	}
	if f.Type().Kind() != reflect.Float64 || f.Float() != 1e-6 {
		t.Fatalf("float field: type %v, default %v", f.Type(), f.Default())
	}
	if s.Type().Kind() != reflect.String || s.String() != "relu" {
		t.Fatalf("string field: type %v, default %v", s.Type(), s.Default())
	}
	if d.Type() != reflect.TypeOf(time.Duration(0)) || d.DurationValue() != 5*time.Second {
		t.Fatalf("duration field: type %v, default %v", d.Type(), d.Default())
	}

	for _, fld := range []interface{ Namespace() string }{b, i, f, s, d} {
		if got := fld.Namespace(); got != "model" {
			t.Fatalf("field namespace = %q, want %q", got, "model")
		}
	}
}

func TestDeclare_Any(t *testing.T) {
	c := params.New("Model")
	f := c.Any("layers", []int{}, []int{64, 64})

	if f.Type() != reflect.TypeOf([]int{}) {
		t.Fatalf("Any type = %v, want []int", f.Type())
	}
	def, ok := f.Default().([]int)
	if !ok || len(def) != 2 || def[0] != 64 {
		t.Fatalf("Any default = %#v, want [64 64]", f.Default())
	}
}

func TestDeclare_DuplicatePanics(t *testing.T) {
	c := params.New("Model")
	c.Int("x", 1)
	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate declaration did not panic")
		}
	}()
	c.Float("x", 2.0)
}

func TestField_OverrideWalksChainSpecificFirst(t *testing.T) {
	base := params.New("Solver")
	fine := params.New("Linear", params.Under(base))

	inherited := base.Int("iterations", 100)
	override := fine.Int("iterations", 500)

	// The specific class sees its own declaration.
	got, ok := fine.Field("iterations")
	if !ok || got != override {
		t.Fatalf("fine.Field: got %v, want the override", got)
	}
	// The general class is untouched.
	got, ok = base.Field("iterations")
	if !ok || got != inherited {
		t.Fatalf("base.Field: got %v, want the base declaration", got)
	}
	// Fields not overridden are inherited.
	tol := base.Float("tolerance", 1e-9)
	got, ok = fine.Field("tolerance")
	if !ok || got != tol {
		t.Fatalf("fine.Field(tolerance): got %v, want inherited field", got)
	}
}

func TestFields_MergedAcrossChain(t *testing.T) {
	base := params.New("Solver")
	fine := params.New("Linear", params.Under(base))

	base.Int("iterations", 100)
	base.Float("tolerance", 1e-9)
	override := fine.Int("iterations", 500)

	merged := fine.Fields()
	if len(merged) != 2 {
		t.Fatalf("merged field count = %d, want 2", len(merged))
	}
	if merged["iterations"] != override {
		t.Fatalf("merged iterations is not the override")
	}
	if merged["iterations"].Int() != 500 {
		t.Fatalf("merged iterations default = %d, want 500", merged["iterations"].Int())
	}
	if merged["tolerance"].Namespace() != "solver" {
		t.Fatalf("inherited tolerance namespace = %q, want %q", merged["tolerance"].Namespace(), "solver")
	}
}

func TestFields_EmptyClass(t *testing.T) {
	c := params.New("Empty")
	if got := c.Fields(); len(got) != 0 {
		t.Fatalf("Fields() on empty class = %v, want empty", got)
	}
	if _, ok := c.Field("nope"); ok {
		t.Fatalf("Field on empty class found something")
	}
}
