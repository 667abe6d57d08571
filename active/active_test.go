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

package active_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackpap/tunableX/active"
)

func TestWithAndFrom(t *testing.T) {
	ctx := context.Background()

	if _, ok := active.From(ctx); ok {
		t.Fatalf("empty context reported an active configuration")
	}

	cfg := map[string]any{"model": map[string]any{"scale": 0.5}}
	ctx = active.With(ctx, cfg)

	got, ok := active.From(ctx)
	if !ok {
		t.Fatalf("From after With failed")
	}
	if got.(map[string]any)["model"] == nil {
		t.Fatalf("active configuration lost its content")
	}
}

func TestWith_NestedShadowsAndRestores(t *testing.T) {
	outer := active.With(context.Background(), "outer")
	inner := active.With(outer, "inner")

	if got, _ := active.From(inner); got != "inner" {
		t.Fatalf("inner scope sees %v, want inner", got)
	}
	// The outer context is untouched: leaving the inner scope is just using
	// the outer context again.
	if got, _ := active.From(outer); got != "outer" {
		t.Fatalf("outer scope sees %v, want outer", got)
	}
}

func TestFrom_NilContext(t *testing.T) {
	if _, ok := active.From(nil); ok {
		t.Fatalf("nil context reported an active configuration")
	}
}

func TestWith_PerGoroutineIsolation(t *testing.T) {
	base := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ctx := active.With(base, id)
			for j := 0; j < 1000; j++ {
				got, ok := active.From(ctx)
				if !ok || got != id {
					t.Errorf("goroutine %d saw %v", id, got)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if _, ok := active.From(base); ok {
		t.Fatalf("base context was polluted")
	}
}
