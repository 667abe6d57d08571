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

// Resolver coordinates strategies to resolve dotted namespace paths into
// sections of an opaque configuration object.
// Typical chain: SectionStrategy -> MappingStrategy -> ReflectStrategy.
type Resolver interface {
	// Resolve steps into root one dot-separated segment at a time and returns
	// the reached section. The empty namespace resolves to root itself.
	// Absence of any segment yields (nil, false); resolution never errors.
	Resolve(root any, namespace string, cfg Config) (section any, ok bool)

	// SectionMap views a resolved section as a field name -> value mapping,
	// or returns (nil, false) if no strategy can produce one.
	SectionMap(section any, cfg Config) (map[string]any, bool)
}
