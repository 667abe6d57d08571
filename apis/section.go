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

// Sectioner is the fast path for configuration objects that know their own
// sections: if a value implements it, the resolver asks it directly before
// trying map or reflection based traversal.
type Sectioner interface {
	// Section returns the named child section, or false if absent.
	Section(name string) (any, bool)
}

// Mapper is the fast path for leaf sections that can expose their fields as
// a plain mapping.
type Mapper interface {
	// FieldMap returns the section's fields as name -> value.
	FieldMap() map[string]any
}
