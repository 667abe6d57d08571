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

package bind

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackpap/tunableX/active"
	"github.com/jackpap/tunableX/apis"
	uref "github.com/jackpap/tunableX/utils/reflect"
)

var (
	// ErrUnknownArg is returned when an explicit argument names a parameter
	// the function does not declare.
	ErrUnknownArg = errors.New("tunablex(bind): unknown argument")
	// ErrArgType is returned when an explicit argument cannot be represented
	// in the parameter's type. Explicit arguments are caller code, so a
	// mismatch is an error rather than a silent drop.
	ErrArgType = errors.New("tunablex(bind): argument type mismatch")
	// ErrMissingArg is returned when a required parameter is satisfied by
	// neither an explicit argument nor the merged configuration.
	ErrMissingArg = errors.New("tunablex(bind): missing required argument")
)

// errType matches a trailing error result.
var errType = reflect.TypeOf((*error)(nil)).Elem()

// Args are the caller's explicit arguments, by parameter name. Explicit
// arguments always win over override and active-configuration values.
type Args map[string]any

// callOpts collects per-call options.
type callOpts struct {
	override    any
	hasOverride bool
}

// CallOption is a per-call option for Call.
type CallOption func(*callOpts)

// Override supplies a call-specific configuration. Only its keys that name
// declared parameters are used; when an override is present the active
// configuration is not consulted. A nil override is ignored.
func Override(cfg any) CallOption {
	return func(co *callOpts) {
		if cfg == nil {
			return
		}
		co.override = cfg
		co.hasOverride = true
	}
}

// Call invokes the bound function.
//
// Values are layered in strict priority order: explicit args always win; an
// Override, when given, is consulted next (and suppresses the active
// configuration); otherwise the configuration carried by ctx contributes,
// one registry entry at a time in registration order, with later entries
// winning per key; declared defaults fill whatever remains.
//
// Configuration-shape problems never raise: an absent section, an unknown
// key, or an uncoercible value just leaves the default in place. Caller
// defects do raise: unknown arg names, ill-typed args, and required
// parameters that end up unfilled.
//
// If the function's first input is a context.Context, ctx is passed through.
// A trailing error result is split off and returned as Call's error.
func (b *Bound) Call(ctx context.Context, args Args, opts ...CallOption) ([]any, error) {
	var co callOpts
	for _, opt := range opts {
		opt(&co)
	}
	cfg := b.config()
	res := b.resolver()

	for name := range args {
		if _, ok := b.byName[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArg, name)
		}
	}

	merged := b.merge(ctx, &co, res, cfg)

	in := make([]reflect.Value, 0, b.rt.NumIn())
	if b.hasCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}
	for i, p := range b.params {
		v, err := b.value(i, p, args, merged)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}

	var out []reflect.Value
	if b.variadic {
		out = b.rv.CallSlice(in)
	} else {
		out = b.rv.Call(in)
	}
	return splitError(out)
}

// merge collects tunable values from the override or the active
// configuration, keyed by parameter name.
func (b *Bound) merge(ctx context.Context, co *callOpts, res apis.Resolver, cfg apis.Config) map[string]any {
	merged := make(map[string]any)

	if co.hasOverride {
		if m, ok := res.SectionMap(co.override, cfg); ok {
			b.take(merged, m, cfg)
		}
		return merged
	}

	app, ok := active.From(ctx)
	if !ok {
		return merged
	}
	for _, e := range b.registry().ByFunc(b.fn) {
		section, found := res.Resolve(app, e.Namespace, cfg)
		if !found {
			continue
		}
		m, found := res.SectionMap(section, cfg)
		if !found {
			continue
		}
		b.take(merged, m, cfg)
	}
	return merged
}

// take copies the section values that name declared parameters into merged,
// overwriting earlier contributions.
func (b *Bound) take(merged map[string]any, section map[string]any, cfg apis.Config) {
	for _, p := range b.params {
		if v, ok := matchKey(section, p.name, cfg); ok {
			merged[p.name] = v
		}
	}
}

// value resolves the final value of one parameter slot.
func (b *Bound) value(i int, p boundParam, args Args, merged map[string]any) (reflect.Value, error) {
	if v, ok := args[p.name]; ok {
		rv, coerced := uref.Coerce(v, p.typ)
		if !coerced {
			return reflect.Value{}, fmt.Errorf("%w: %q (%T into %s)", ErrArgType, p.name, v, p.typ)
		}
		return rv, nil
	}
	if v, ok := merged[p.name]; ok {
		if rv, coerced := uref.Coerce(v, p.typ); coerced {
			return rv, nil
		}
		// Wrong shape in configuration: drop and fall back to the default.
	}
	if p.hasDefault {
		return p.def, nil
	}
	if b.variadic && i == len(b.params)-1 {
		return reflect.MakeSlice(p.typ, 0, 0), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %q", ErrMissingArg, p.name)
}

// matchKey looks name up in a section mapping, exactly first, then folded.
func matchKey(m map[string]any, name string, cfg apis.Config) (any, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	if cfg.CaseInsensitive {
		want := uref.Fold(name)
		for k, v := range m {
			if uref.Fold(k) == want {
				return v, true
			}
		}
	}
	return nil, false
}

// splitError separates a trailing error result from the returned values.
func splitError(out []reflect.Value) ([]any, error) {
	results := make([]any, 0, len(out))
	var err error
	for i, o := range out {
		if i == len(out)-1 && o.Type() == errType {
			if !o.IsNil() {
				err = o.Interface().(error)
			}
			continue
		}
		results = append(results, o.Interface())
	}
	return results, err
}
