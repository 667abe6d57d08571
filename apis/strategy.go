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

// Strategy is a pluggable traversal step. A Resolver chains multiple
// strategies in order (e.g., Section -> Mapping -> Reflect).
type Strategy interface {
	// TryStep attempts to step from section v into the child named name.
	// It returns (child, true) if found; otherwise (nil, false) to fall
	// through to the next strategy.
	TryStep(v any, name string, cfg Config) (child any, ok bool)

	// TryMap attempts to view v as a field name -> value mapping.
	TryMap(v any, cfg Config) (fields map[string]any, ok bool)
}
