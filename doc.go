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

// Package tunablex provides a global, process-wide registry of tunable
// function parameters and the machinery to fill those parameters from a
// configuration object at call time.
//
// tunablex is responsible for three jobs: declaring which parameters of a
// function are tunable, placing them in dotted hierarchical namespaces
// ("model.preprocess", "solver.linear"), and, when the function is called,
// merging values for them out of whatever configuration is currently active.
// The caller's explicit arguments always win; configuration fills the rest;
// declared defaults fill whatever the configuration does not mention.
//
// # Design
//
// The core of tunablex is a read-mostly global snapshot (state). The
// snapshot holds four things:
//
//   - Config: knobs that control how configuration objects are traversed
//     (maximum namespace depth, case-insensitive key matching, whether
//     struct tags name fields).
//
//   - Registry: a process-wide collection of tunable entries. Each entry
//     ties a function to one namespace and the schema of the parameters it
//     takes from that namespace (field name, type, default, required). One
//     function may own several entries when its parameters come from
//     different namespaces. The registry can be written to at runtime
//     (Register).
//
//   - Resolver: a read-only object that answers "which part of this
//     configuration object corresponds to namespace X?". The resolver walks
//     the dotted path one segment at a time, trying strategies in priority
//     order:
//     1. If the value implements apis.Sectioner, use v.Section(name).
//     2. If the value is a string-keyed map, index it.
//     3. Otherwise fall back to reflect-based struct field lookup,
//     honoring yaml/json tags and case folding per Config.
//     Resolver is expected to be concurrency-safe for reads.
//
//   - Builder: a pluggable factory that knows how to construct Registry
//     and Resolver instances for a given Config (and optional extension
//     data). The Builder is allowed to migrate entries from previous
//     Registry instances, so reconfiguration does not lose registrations.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in. Lookups are therefore lock-free on the hot path:
//
//	section, ok := tunablex.Section(cfgObj, "model.preprocess")
//	entries := tunablex.ByNamespace("model.preprocess")
//
// and concurrent callers always see a consistent snapshot.
//
// # Declaring tunables
//
// The subpackages build on the snapshot:
//
//   - params declares parameter classes. A class carries named fields with
//     defaults and sits in a namespace derived from its ancestor chain:
//     Main -> Model -> Preprocess yields "model.preprocess" (the root class
//     name "main" is dropped). Fields are shared handles; many functions can
//     bind the same field and they all read the same configuration slot.
//
//   - bind wraps a function. bind.New takes the function plus an ordered
//     declaration of its inputs (bind.Field ties an input to a params.Field,
//     bind.Value gives a local default, bind.Arg declares a required input)
//     and registers one schema per namespace in the Registry. Include and
//     Exclude options narrow the tunable set.
//
//   - active carries the current configuration object on a context.Context.
//     bind.(*Bound).Call(ctx, args) consults it when no per-call Override is
//     given.
//
//   - export renders the registered surface as nested default templates
//     (and YAML), filtered by app tag, so operators can start from a
//     complete configuration skeleton.
//
// # Global API
//
// The root package exposes three groups of operations:
//
//  1. Read helpers:
//
//     Register(e apis.Entry) error
//     ByNamespace(ns string) []apis.Entry
//     ByFunc(fn any) []apis.Entry
//     Section(root any, namespace string) (any, bool)
//     SectionMap(section any) (map[string]any, bool)
//     Registry() apis.Registry
//     Resolver() apis.Resolver
//
//     These are safe for concurrent use without additional locking. They
//     always read from the latest published snapshot.
//
//  2. Mutation helpers:
//
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetExt(ext T)
//     SetRegistry(reg apis.Registry)
//     SetResolver(res apis.Resolver)
//     PinRegistry() / UnpinRegistry()
//     PinResolver() / UnpinResolver()
//     SetAll(...)
//
//     Each of these acquires an internal build lock, derives a new snapshot
//     (rebuilding or reusing Registry / Resolver as needed), and atomically
//     publishes it.
//
//     Semantics in short:
//
//     - Config affects traversal. Calling SetConfig() rebuilds Registry
//     and/or Resolver through the Builder, unless they are pinned. The
//     default Builder migrates existing entries into the rebuilt registry.
//
//     - Builder controls how Registry and Resolver are constructed.
//     Swapping the Builder lets a binary replace resolution logic
//     (different strategies, different storage) at runtime.
//
//     - Ext is an opaque extension payload. It is not interpreted by
//     tunablex itself; it is passed down to the Builder so custom builders
//     in other binaries can carry extra policy or state.
//
//     - SetRegistry() / SetResolver() directly overwrite the current layer
//     in the snapshot and pin it. A pinned layer is never rebuilt
//     automatically until the matching Unpin call.
//
//     - SetAll(...) is the hard-reset API: replace Builder, Config, Ext,
//     Registry, Resolver in one shot. Mainly used by tests to reach a
//     clean deterministic state between cases.
//
//  3. Introspection:
//
//     ExtAs[T]() (T, bool)
//     IsRegistryPinned() / IsResolverPinned()
//     // plus Registry().Entries(), Registry().Namespaces(), etc.
//
// # Concurrency model
//
// Reads are wait-free: they load the current *state atomically and never
// take locks. The Registry and Resolver held by a snapshot must themselves
// be concurrency-safe for reads (the built-in ones are; the registry guards
// its entry list with a RWMutex, the resolver is stateless).
//
// Writes take a short build mutex, assemble a brand-new state struct, and
// publish it via an atomic pointer swap. This gives the calling binary a
// predictable last-write-wins behavior without per-lookup locking.
//
// The active configuration is deliberately NOT part of the global snapshot.
// It rides the context.Context, so concurrent tasks can each run under
// their own configuration and nested scopes shadow and restore naturally.
//
// # Usage pattern in a binary
//
// A typical component does:
//
//  1. Let tunablex init with the default builder/config.
//
//  2. Declare parameter classes and fields once, at package level:
//
//     var model = params.New("Model", params.Under(root))
//     var tol   = model.Float("tolerance", 1e-6)
//
//  3. Bind functions at load time:
//
//     var solve = bind.MustNew(Solve,
//     bind.Params(bind.Field("tolerance", tol)),
//     bind.Apps("trainer"))
//
//  4. At the entry point, load a configuration object, activate it, and
//     call through the wrappers:
//
//     ctx = active.With(ctx, cfgObj)
//     out, err := solve.Call(ctx, nil)
//
//  5. Ship operators a starting configuration via export.YAML(
//     tunablex.Registry(), "trainer").
//
// # Scope
//
// tunablex is intentionally small. It is not a DI container, a CLI flag
// library, or a configuration file loader. It only solves one job:
//
//	"Given a function with declared tunable parameters and an active
//	 configuration object, fill the parameters the caller did not pass."
//
// Loading, validating, and persisting configuration belongs to higher
// layers.
package tunablex
