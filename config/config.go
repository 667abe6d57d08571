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

package config

import (
	"github.com/jackpap/tunableX/apis"
)

const (
	// DefaultMaxDepth represents the default for MaxDepth.
	// Eight dotted segments should be sufficient for all practical hierarchies.
	DefaultMaxDepth = 8
	// DefaultCaseInsensitive represents the default for CaseInsensitive.
	// When true, folded name matching is used as a fallback.
	DefaultCaseInsensitive = true
	// DefaultUseFieldTags represents the default for UseFieldTags.
	// When true, yaml/json struct tags participate in name matching.
	DefaultUseFieldTags = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxDepth:        DefaultMaxDepth,
		CaseInsensitive: DefaultCaseInsensitive,
		UseFieldTags:    DefaultUseFieldTags,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxDepth sets the MaxDepth option.
// A negative value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth < 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithCaseInsensitive sets the CaseInsensitive option.
func WithCaseInsensitive(fold bool) Option {
	return func(c *apis.Config) {
		c.CaseInsensitive = fold
	}
}

// WithFieldTags sets the UseFieldTags option.
func WithFieldTags(use bool) Option {
	return func(c *apis.Config) {
		c.UseFieldTags = use
	}
}
