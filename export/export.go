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

// Package export renders the registered tunable surface as configuration
// templates.
//
// A template is the nested default tree of every registered schema, filtered
// by app tag, ready to be handed to operators as a starting configuration.
// Export only generates; loading or persisting configuration is a caller
// concern.
package export

import (
	"sort"
	"strings"

	"github.com/jackpap/tunableX/apis"
	"gopkg.in/yaml.v3"
)

// Apps returns the distinct app tags present in the registry, sorted.
func Apps(reg apis.Registry) []string {
	seen := make(map[string]bool)
	for _, e := range reg.Entries() {
		for _, tag := range e.Apps {
			seen[tag] = true
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Template builds a nested map of default values for every entry matching
// any of the given app tags (no tags selects all entries). Required fields
// without defaults render as nil placeholders. When a namespace path
// collides with a previously written leaf value, the section wins: templates
// favor structure over a single default.
func Template(reg apis.Registry, apps ...string) map[string]any {
	root := make(map[string]any)
	for _, e := range reg.Entries() {
		if !matches(e, apps) {
			continue
		}
		section := descend(root, e.Namespace)
		names := make([]string, 0, len(e.Schema))
		for name := range e.Schema {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, taken := section[name].(map[string]any); taken {
				// An existing subsection keeps its place.
				continue
			}
			section[name] = e.Schema[name].Default
		}
	}
	return root
}

// YAML renders Template as YAML.
func YAML(reg apis.Registry, apps ...string) ([]byte, error) {
	return yaml.Marshal(Template(reg, apps...))
}

// matches reports whether the entry carries any of the wanted tags.
// An empty want list matches everything.
func matches(e apis.Entry, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, tag := range e.Apps {
			if tag == w {
				return true
			}
		}
	}
	return false
}

// descend walks (and creates) the section path for a dotted namespace,
// replacing any leaf value that stands where a section must go.
func descend(root map[string]any, namespace string) map[string]any {
	if namespace == "" {
		return root
	}
	cur := root
	for _, seg := range strings.Split(namespace, ".") {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}
		cur = next
	}
	return cur
}
