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

package apis

// Config carries read-only resolution knobs that influence strategies.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxDepth limits how many dotted segments a namespace path may have.
	// Acts as a safety guard against pathological nesting; namespaces deeper
	// than this can never resolve and are rejected at registration time.
	MaxDepth int

	// CaseInsensitive controls whether section and field name matching falls
	// back to a folded comparison (lower-cased, underscores stripped) when no
	// exact match exists. With it, "hidden_units" reaches a HiddenUnits field.
	CaseInsensitive bool

	// UseFieldTags controls whether `yaml:` and `json:` struct tags take part
	// in name matching when stepping into struct-backed configuration objects.
	UseFieldTags bool
}
