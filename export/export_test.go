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

package export_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jackpap/tunableX/apis"
	"github.com/jackpap/tunableX/config"
	"github.com/jackpap/tunableX/export"
	"github.com/jackpap/tunableX/registry"
)

func train(epochs int, lr float64) {}
func serve(workers int)            {}

func seed(t *testing.T) apis.Registry {
	t.Helper()
	reg := registry.New(config.DefaultConfig())

	entries := []apis.Entry{
		{
			Fn:        train,
			Namespace: "model",
			Schema: apis.Schema{
				"epochs": {Type: reflect.TypeOf(0), Default: 10},
				"lr":     {Type: reflect.TypeOf(0.0), Default: 0.001},
			},
			Apps: []string{"trainer"},
		},
		{
			Fn:        train,
			Namespace: "model.preprocess",
			Schema: apis.Schema{
				"normalize": {Type: reflect.TypeOf(false), Default: true},
			},
			Apps: []string{"trainer"},
		},
		{
			Fn:        serve,
			Namespace: "server",
			Schema: apis.Schema{
				"workers": {Type: reflect.TypeOf(0), Default: 4},
			},
			Apps: []string{"api"},
		},
	}
	for _, e := range entries {
		if err := reg.Register(e); err != nil {
			t.Fatalf("seed register: %v", err)
		}
	}
	return reg
}

func TestApps(t *testing.T) {
	reg := seed(t)
	got := export.Apps(reg)
	want := []string{"api", "trainer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Apps() = %v, want %v", got, want)
	}
}

func TestTemplate_AllEntries(t *testing.T) {
	reg := seed(t)
	tpl := export.Template(reg)

	model, ok := tpl["model"].(map[string]any)
	if !ok {
		t.Fatalf("template misses model section: %#v", tpl)
	}
	if model["epochs"] != 10 || model["lr"] != 0.001 {
		t.Fatalf("model section = %#v", model)
	}
	prep, ok := model["preprocess"].(map[string]any)
	if !ok || prep["normalize"] != true {
		t.Fatalf("nested preprocess section = %#v", model["preprocess"])
	}
	server, ok := tpl["server"].(map[string]any)
	if !ok || server["workers"] != 4 {
		t.Fatalf("server section = %#v", tpl["server"])
	}
}

func TestTemplate_FilteredByApp(t *testing.T) {
	reg := seed(t)
	tpl := export.Template(reg, "api")

	if _, leaked := tpl["model"]; leaked {
		t.Fatalf("trainer sections leaked into api template: %#v", tpl)
	}
	server, ok := tpl["server"].(map[string]any)
	if !ok || server["workers"] != 4 {
		t.Fatalf("api template = %#v", tpl)
	}
}

func TestTemplate_RequiredFieldsRenderAsNil(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	e := apis.Entry{
		Fn:        train,
		Namespace: "model",
		Schema: apis.Schema{
			"x": {Type: reflect.TypeOf(0.0), Required: true},
		},
	}
	if err := reg.Register(e); err != nil {
		t.Fatalf("register: %v", err)
	}

	tpl := export.Template(reg)
	model := tpl["model"].(map[string]any)
	if v, present := model["x"]; !present || v != nil {
		t.Fatalf("required field = (%v, %v), want nil placeholder", v, present)
	}
}

func TestTemplate_SectionWinsOverLeaf(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	// One entry writes "model.preprocess" as a leaf default, another needs
	// "model.preprocess" as a section. Structure wins.
	leaf := apis.Entry{
		Fn:        train,
		Namespace: "model",
		Schema: apis.Schema{
			"preprocess": {Type: reflect.TypeOf(""), Default: "none"},
		},
	}
	section := apis.Entry{
		Fn:        train,
		Namespace: "model.preprocess",
		Schema: apis.Schema{
			"normalize": {Type: reflect.TypeOf(false), Default: true},
		},
	}
	if err := reg.Register(leaf); err != nil {
		t.Fatalf("register leaf: %v", err)
	}
	if err := reg.Register(section); err != nil {
		t.Fatalf("register section: %v", err)
	}

	tpl := export.Template(reg)
	model := tpl["model"].(map[string]any)
	prep, ok := model["preprocess"].(map[string]any)
	if !ok {
		t.Fatalf("preprocess is not a section: %#v", model["preprocess"])
	}
	if prep["normalize"] != true {
		t.Fatalf("section content lost: %#v", prep)
	}
}

func TestYAML(t *testing.T) {
	reg := seed(t)
	out, err := export.YAML(reg, "trainer")
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	text := string(out)
	for _, want := range []string{"model:", "epochs: 10", "preprocess:", "normalize: true"} {
		if !strings.Contains(text, want) {
			t.Fatalf("YAML output misses %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "server:") {
		t.Fatalf("YAML output leaked the api app:\n%s", text)
	}
}
