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

// Package bind turns ordinary functions into tunable ones.
//
// New accepts a function plus an ordered declaration of its parameters and
// returns a Bound wrapper. Parameters declared with Field inherit the
// params.Field's namespace; the wrapper registers one schema per namespace in
// the registry and, at call time, merges values from an explicit override or
// the active configuration underneath the caller's explicit arguments.
//
// Binding happens once at load time; malformed declarations fail immediately.
// Call-time resolution is best-effort: a missing section, a missing key, or a
// value of the wrong shape simply leaves the declared default in place.
package bind

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"

	tunablex "github.com/jackpap/tunableX"
	"github.com/jackpap/tunableX/apis"
	"github.com/jackpap/tunableX/params"
	uref "github.com/jackpap/tunableX/utils/reflect"
)

var (
	// ErrNotFunc is returned when the bind target is not a function.
	ErrNotFunc = errors.New("tunablex(bind): target is not a function")
	// ErrArity is returned when the parameter declarations do not match the
	// function signature.
	ErrArity = errors.New("tunablex(bind): parameter declarations do not match signature")
	// ErrDuplicateParam is returned when a parameter name is declared twice.
	ErrDuplicateParam = errors.New("tunablex(bind): duplicate parameter name")
	// ErrUnknownName is returned when an include/exclude list names a
	// parameter that was not declared.
	ErrUnknownName = errors.New("tunablex(bind): selection names unknown parameter")
	// ErrVariadicSelected is returned when a selection explicitly includes
	// the variadic parameter; variadic parameters are never tunable.
	ErrVariadicSelected = errors.New("tunablex(bind): variadic parameter is not selectable")
	// ErrBadDefault is returned when a declared default cannot be
	// represented in the function's parameter type.
	ErrBadDefault = errors.New("tunablex(bind): default not representable in parameter type")
	// ErrBadPrototype is returned when an Arg prototype cannot be
	// represented in the function's parameter type.
	ErrBadPrototype = errors.New("tunablex(bind): prototype not representable in parameter type")
)

// ctxType matches an optional leading context.Context input.
var ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()

// Param declares one input of the bound function.
type Param struct {
	name       string
	field      *params.Field
	def        any
	hasDefault bool
	proto      any
}

// Field declares a tunable parameter backed by a centralized params.Field:
// the parameter inherits the field's namespace, default, and type.
func Field(name string, f *params.Field) Param {
	return Param{name: name, field: f, def: f.Default(), hasDefault: true}
}

// Value declares a tunable parameter with a local default. It belongs to the
// root namespace unless the binding carries an explicit Namespace option.
func Value(name string, def any) Param {
	return Param{name: name, def: def, hasDefault: true}
}

// Arg declares a required input with no default. It is only selectable via
// an explicit include list, in which case it registers as a required schema
// field. prototype documents the expected type and is checked against the
// signature at New; nil skips the check.
func Arg(name string, prototype any) Param {
	return Param{name: name, proto: prototype}
}

// options collects construction options for New.
type options struct {
	params     []Param
	include    []string
	exclude    []string
	namespace  string
	nsExplicit bool
	apps       []string
	reg        apis.Registry
	res        apis.Resolver
	cfg        *apis.Config
}

// Option is a functional option for New.
type Option func(*options)

// Params declares the function's inputs, in signature order (excluding an
// optional leading context.Context).
func Params(ps ...Param) Option {
	return func(o *options) { o.params = append(o.params, ps...) }
}

// Include selects exactly the named parameters, whether or not they declare
// defaults. A non-empty include list takes precedence over Exclude.
func Include(names ...string) Option {
	return func(o *options) { o.include = append(o.include, names...) }
}

// Exclude selects every defaulted parameter except the named ones.
func Exclude(names ...string) Option {
	return func(o *options) { o.exclude = append(o.exclude, names...) }
}

// Namespace places every selected parameter in the given namespace and
// disables per-parameter inference. The empty string is the root namespace.
func Namespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
		o.nsExplicit = true
	}
}

// Apps tags the registration with app names, grouping functions per
// executable.
func Apps(tags ...string) Option {
	return func(o *options) { o.apps = append(o.apps, tags...) }
}

// WithRegistry registers into reg instead of the global registry.
func WithRegistry(reg apis.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithResolver resolves the active configuration with res instead of the
// global resolver.
func WithResolver(res apis.Resolver) Option {
	return func(o *options) { o.res = res }
}

// WithConfig fixes the traversal knobs instead of reading the global config.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// boundParam is a validated parameter slot of a Bound function.
type boundParam struct {
	name       string
	typ        reflect.Type
	def        reflect.Value
	hasDefault bool
	selected   bool
	namespace  string
}

// Bound is a function whose selected parameters are injected from the active
// configuration or a call-time override. Create one with New or MustNew.
type Bound struct {
	fn       any
	rv       reflect.Value
	rt       reflect.Type
	hasCtx   bool
	variadic bool
	params   []boundParam
	byName   map[string]int

	reg apis.Registry
	res apis.Resolver
	cfg *apis.Config
}

// New binds fn. The declared parameters must mirror fn's inputs in order; a
// leading context.Context input is passed through from Call and not
// declared. New validates the declaration, builds one schema per resolved
// namespace, and registers the schemas before returning the wrapper.
// Declaration defects are programming errors and fail here, loudly.
func New(fn any, opts ...Option) (*Bound, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if fn == nil {
		return nil, ErrNotFunc
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, ErrNotFunc
	}
	rt := rv.Type()

	hasCtx := rt.NumIn() > 0 && rt.In(0) == ctxType
	off := 0
	if hasCtx {
		off = 1
	}
	if rt.NumIn()-off != len(o.params) {
		return nil, fmt.Errorf("%w: %d declared, signature takes %d", ErrArity, len(o.params), rt.NumIn()-off)
	}

	b := &Bound{
		fn:       fn,
		rv:       rv,
		rt:       rt,
		hasCtx:   hasCtx,
		variadic: rt.IsVariadic(),
		params:   make([]boundParam, 0, len(o.params)),
		byName:   make(map[string]int, len(o.params)),
		reg:      o.reg,
		res:      o.res,
		cfg:      o.cfg,
	}

	for i, p := range o.params {
		if p.name == "" {
			return nil, fmt.Errorf("%w: parameter %d has no name", ErrArity, i)
		}
		if _, dup := b.byName[p.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParam, p.name)
		}
		bp := boundParam{name: p.name, typ: rt.In(i + off)}
		if p.hasDefault {
			def, ok := uref.Coerce(p.def, bp.typ)
			if !ok {
				return nil, fmt.Errorf("%w: %q (%T into %s)", ErrBadDefault, p.name, p.def, bp.typ)
			}
			bp.def = def
			bp.hasDefault = true
		}
		if p.proto != nil {
			if _, ok := uref.Coerce(p.proto, bp.typ); !ok {
				return nil, fmt.Errorf("%w: %q (%T into %s)", ErrBadPrototype, p.name, p.proto, bp.typ)
			}
		}
		if p.field != nil {
			bp.namespace = p.field.Namespace()
		}
		b.byName[p.name] = len(b.params)
		b.params = append(b.params, bp)
	}

	if err := b.selectParams(&o); err != nil {
		return nil, err
	}
	if err := b.register(&o); err != nil {
		return nil, err
	}
	return b, nil
}

// MustNew is New that panics on error, for load-time registration.
func MustNew(fn any, opts ...Option) *Bound {
	b, err := New(fn, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// selectParams marks the tunable parameters. A non-empty include list selects
// exactly those names; otherwise a non-empty exclude list selects every
// defaulted parameter not excluded; otherwise every defaulted parameter is
// selected. The variadic parameter is never selected.
func (b *Bound) selectParams(o *options) error {
	lastIdx := len(b.params) - 1
	isVariadic := func(i int) bool { return b.variadic && i == lastIdx }

	switch {
	case len(o.include) > 0:
		for _, name := range o.include {
			i, ok := b.byName[name]
			if !ok {
				return fmt.Errorf("%w: include %q", ErrUnknownName, name)
			}
			if isVariadic(i) {
				return fmt.Errorf("%w: %q", ErrVariadicSelected, name)
			}
			b.params[i].selected = true
		}
	case len(o.exclude) > 0:
		excluded := make(map[string]bool, len(o.exclude))
		for _, name := range o.exclude {
			if _, ok := b.byName[name]; !ok {
				return fmt.Errorf("%w: exclude %q", ErrUnknownName, name)
			}
			excluded[name] = true
		}
		for i := range b.params {
			b.params[i].selected = b.params[i].hasDefault && !excluded[b.params[i].name] && !isVariadic(i)
		}
	default:
		for i := range b.params {
			b.params[i].selected = b.params[i].hasDefault && !isVariadic(i)
		}
	}

	// An explicit namespace overrides per-parameter inference.
	if o.nsExplicit {
		for i := range b.params {
			b.params[i].namespace = o.namespace
		}
	}
	return nil
}

// register groups the selected parameters by namespace, in first-appearance
// order of the declaration, and registers one entry per group. That order is
// what makes the call-time merge deterministic: later groups win collisions.
func (b *Bound) register(o *options) error {
	groups := make(map[string]apis.Schema)
	var order []string
	for _, p := range b.params {
		if !p.selected {
			continue
		}
		g, ok := groups[p.namespace]
		if !ok {
			g = make(apis.Schema)
			groups[p.namespace] = g
			order = append(order, p.namespace)
		}
		spec := apis.FieldSpec{Type: p.typ, Required: !p.hasDefault}
		if p.hasDefault {
			spec.Default = p.def.Interface()
		}
		g[p.name] = spec
	}

	if len(order) == 0 {
		return nil
	}

	apps := dedupe(o.apps)
	reg := b.registry()
	for _, ns := range order {
		e := apis.Entry{
			Fn:        b.fn,
			Sig:       b.rt,
			Namespace: ns,
			Schema:    groups[ns],
			Apps:      apps,
		}
		if err := reg.Register(e); err != nil {
			return fmt.Errorf("tunablex(bind): register namespace %q: %w", ns, err)
		}
	}
	return nil
}

// registry returns the bound registry, defaulting to the global snapshot.
func (b *Bound) registry() apis.Registry {
	if b.reg != nil {
		return b.reg
	}
	return tunablex.Registry()
}

// resolver returns the bound resolver, defaulting to the global snapshot.
func (b *Bound) resolver() apis.Resolver {
	if b.res != nil {
		return b.res
	}
	return tunablex.Resolver()
}

// config returns the bound traversal config, defaulting to the global one.
func (b *Bound) config() apis.Config {
	if b.cfg != nil {
		return *b.cfg
	}
	return tunablex.Config()
}

// Fn returns the original function.
func (b *Bound) Fn() any { return b.fn }

// Namespaces returns the namespaces the bound parameters were grouped into,
// in registration order.
func (b *Bound) Namespaces() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range b.params {
		if p.selected && !seen[p.namespace] {
			seen[p.namespace] = true
			out = append(out, p.namespace)
		}
	}
	return out
}

// dedupe sorts and de-duplicates app tags.
func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
