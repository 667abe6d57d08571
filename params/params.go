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

// Package params declares centralized tunable parameters whose ancestor chain
// encodes a configuration namespace.
//
// A Class positioned under a parent contributes its lower-cased name as one
// dotted namespace segment, in general-to-specific order. The distinguished
// root name "main" (case-insensitive) maps to the root namespace and
// contributes no segment:
//
//	main  := params.New("Main")                        // namespace ""
//	model := params.New("Model", params.Under(main))   // namespace "model"
//	prep  := params.New("Preprocess", params.Under(model)) // "model.preprocess"
//
// Fields declared on a class carry a default value and a type. The returned
// *Field handle plays a dual role: it is a plain readable default
// (model fields can be referenced as ordinary values anywhere) and it is the
// explicit binding marker the binder uses to assign a function parameter to
// this class's namespace. A field re-declared on a more specific class
// overrides the more general declaration.
//
// Classes and fields are declared once at load time and are immutable
// afterwards; declaration defects panic immediately.
package params

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// RootName is the distinguished class name (compared case-insensitively)
// that always maps to the empty, root namespace.
const RootName = "main"

// Class is a declarative set of named default values positioned in a chain
// of ancestors. Its namespace is derived from that chain.
type Class struct {
	name      string
	parent    *Class
	namespace string

	mu     sync.RWMutex
	fields map[string]*Field
	order  []string
}

// classOptions collects construction options for New.
type classOptions struct {
	parent *Class
}

// Option is a functional option for New.
type Option func(*classOptions)

// Under positions the new class beneath parent in the namespace hierarchy.
func Under(parent *Class) Option {
	return func(o *classOptions) {
		o.parent = parent
	}
}

// New declares a parameter class. An empty name panics: class declarations
// happen at load time and malformed ones are programming defects.
func New(name string, opts ...Option) *Class {
	if name == "" {
		panic("tunablex(params): empty class name")
	}
	var o classOptions
	for _, opt := range opts {
		opt(&o)
	}
	c := &Class{
		name:   name,
		parent: o.parent,
		fields: make(map[string]*Field),
	}
	c.namespace = computeNamespace(c)
	return c
}

// computeNamespace walks the ancestor chain from most general to most
// specific. Classes named RootName contribute no segment; every other
// ancestor contributes its lower-cased name.
func computeNamespace(c *Class) string {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	segs := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		if strings.EqualFold(chain[i].name, RootName) {
			continue
		}
		segs = append(segs, strings.ToLower(chain[i].name))
	}
	return strings.Join(segs, ".")
}

// Name returns the declared class name.
func (c *Class) Name() string { return c.name }

// Parent returns the parent class, or nil for a chain root.
func (c *Class) Parent() *Class { return c.parent }

// Namespace returns the dotted namespace derived from the ancestor chain.
// The empty string is the root namespace.
func (c *Class) Namespace() string { return c.namespace }

// declare records a field on this class. Duplicate names within the same
// class panic; shadowing an ancestor's field is the supported override.
func (c *Class) declare(name string, typ reflect.Type, def any) *Field {
	if name == "" {
		panic("tunablex(params): empty field name on class " + c.name)
	}
	f := &Field{class: c, name: name, typ: typ, def: def}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.fields[name]; dup {
		panic(fmt.Sprintf("tunablex(params): field %q declared twice on class %s", name, c.name))
	}
	c.fields[name] = f
	c.order = append(c.order, name)
	return f
}

// Bool declares a boolean field with a default.
func (c *Class) Bool(name string, def bool) *Field {
	return c.declare(name, reflect.TypeOf(def), def)
}

// Int declares an integer field with a default.
func (c *Class) Int(name string, def int) *Field {
	return c.declare(name, reflect.TypeOf(def), def)
}

// Float declares a float64 field with a default.
func (c *Class) Float(name string, def float64) *Field {
	return c.declare(name, reflect.TypeOf(def), def)
}

// String declares a string field with a default.
func (c *Class) String(name string, def string) *Field {
	return c.declare(name, reflect.TypeOf(def), def)
}

// Duration declares a time.Duration field with a default.
func (c *Class) Duration(name string, def time.Duration) *Field {
	return c.declare(name, reflect.TypeOf(def), def)
}

// Any declares a field of an arbitrary type. prototype carries the type
// (either a reflect.Type or an example value); def may be nil for nil-able
// types. A nil type panics.
func (c *Class) Any(name string, prototype any, def any) *Field {
	var typ reflect.Type
	switch p := prototype.(type) {
	case reflect.Type:
		typ = p
	default:
		typ = reflect.TypeOf(prototype)
	}
	if typ == nil {
		panic(fmt.Sprintf("tunablex(params): field %q on class %s has no type", name, c.name))
	}
	return c.declare(name, typ, def)
}

// Field returns the field declared under name, walking the ancestor chain
// from most specific to most general so overrides win.
func (c *Class) Field(name string) (*Field, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		f, ok := cur.fields[name]
		cur.mu.RUnlock()
		if ok {
			return f, true
		}
	}
	return nil, false
}

// Fields returns the merged field set of the class and its ancestors, with a
// more specific declaration overriding a more general one of the same name.
// A class with no declared fields yields an empty map.
func (c *Class) Fields() map[string]*Field {
	out := make(map[string]*Field)
	var chain []*Class
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	// Most general first so specific declarations overwrite.
	for i := len(chain) - 1; i >= 0; i-- {
		cl := chain[i]
		cl.mu.RLock()
		for _, name := range cl.order {
			out[name] = cl.fields[name]
		}
		cl.mu.RUnlock()
	}
	return out
}

// Field is one declared parameter: a name, a type, a default value, and the
// class (hence namespace) it belongs to. The handle doubles as the plain
// default value and as the binder's namespace marker.
type Field struct {
	class *Class
	name  string
	typ   reflect.Type
	def   any
}

// Class returns the declaring class.
func (f *Field) Class() *Class { return f.class }

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Namespace returns the declaring class's namespace.
func (f *Field) Namespace() string { return f.class.namespace }

// Type returns the declared field type.
func (f *Field) Type() reflect.Type { return f.typ }

// Default returns the declared default value.
func (f *Field) Default() any { return f.def }

// Bool returns the default as a bool, or false for other types.
func (f *Field) Bool() bool {
	v, _ := f.def.(bool)
	return v
}

// Int returns the default as an int, or 0 for other types.
func (f *Field) Int() int {
	v, _ := f.def.(int)
	return v
}

// Float returns the default as a float64, or 0 for other types.
func (f *Field) Float() float64 {
	v, _ := f.def.(float64)
	return v
}

// String returns the default as a string, or "" for other types.
func (f *Field) String() string {
	v, _ := f.def.(string)
	return v
}

// DurationValue returns the default as a time.Duration, or 0 for other types.
func (f *Field) DurationValue() time.Duration {
	v, _ := f.def.(time.Duration)
	return v
}
