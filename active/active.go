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

// Package active carries the current configuration object on a
// context.Context.
//
// The active configuration is the value bound functions consult when no
// explicit override is supplied at call time. Riding the context gives the
// required scoping for free: each logical task sees only its own value,
// an inner With shadows an outer one for exactly the inner scope, and the
// prior value is restored on every exit path, including panics, because the
// outer context is never mutated.
package active

import "context"

// ctxKey is the private context key for the active configuration.
type ctxKey struct{}

// With returns a child context whose active configuration is cfg.
// The parent context keeps its previous value.
func With(ctx context.Context, cfg any) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// From returns the active configuration carried by ctx, if any.
func From(ctx context.Context) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	v := ctx.Value(ctxKey{})
	if v == nil {
		return nil, false
	}
	return v, true
}
