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

package builder

import (
	"github.com/jackpap/tunableX/apis"
	"github.com/jackpap/tunableX/registry"
	"github.com/jackpap/tunableX/resolver"
	"github.com/jackpap/tunableX/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its entries are migrated into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver for the provided
// configuration: the section fast path, then mapping traversal, then the
// reflect fallback.
func (b *builder) BuildResolver(cfg apis.Config, _ apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewSectionStrategy(),
		strategy.NewMappingStrategy(),
		strategy.NewReflectStrategy(),
	)
}
