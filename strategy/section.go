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
	"github.com/jackpap/tunableX/apis"
)

// NewSectionStrategy creates an apis.Strategy that uses the Sectioner and
// Mapper fast-path interfaces.
func NewSectionStrategy() apis.Strategy {
	return &sectionStrategy{}
}

// sectionStrategy is a zero-cost fast path: if a configuration object knows
// its own sections or fields, ask it directly and skip reflection.
type sectionStrategy struct{}

// Ensure sectionStrategy implements apis.Strategy.
var _ apis.Strategy = (*sectionStrategy)(nil)

// TryStep asks v for the named child section if it implements apis.Sectioner.
// A miss falls through so map- or struct-backed lookups still get a chance.
func (*sectionStrategy) TryStep(v any, name string, _ apis.Config) (any, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.(apis.Sectioner); ok {
		if child, found := s.Section(name); found {
			return child, true
		}
	}
	return nil, false
}

// TryMap asks v for its field mapping if it implements apis.Mapper.
func (*sectionStrategy) TryMap(v any, _ apis.Config) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(apis.Mapper); ok {
		if fields := m.FieldMap(); fields != nil {
			return fields, true
		}
	}
	return nil, false
}
