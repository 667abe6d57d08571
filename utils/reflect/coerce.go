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

package reflect

import (
	"reflect"
	"time"
)

// durationType is the target for duration-from-string coercion.
var durationType = reflect.TypeOf(time.Duration(0))

// Coerce adapts v to type t for injection into a function call.
//
// Accepted adaptations, in order:
//   - nil into a nil-able kind (pointer, interface, map, slice, chan, func)
//   - direct assignability
//   - numeric kind conversion (int/uint/float families)
//   - duration strings ("250ms", "5m") into time.Duration
//   - string kind conversion between named string types
//
// Anything else is rejected; callers decide whether rejection is a silent
// drop (configuration values) or an error (explicit arguments).
func Coerce(v any, t reflect.Type) (reflect.Value, bool) {
	if t == nil {
		return reflect.Value{}, false
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(t), true
		default:
			return reflect.Value{}, false
		}
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}
	if isNumeric(rv.Kind()) && isNumeric(t.Kind()) {
		return rv.Convert(t), true
	}
	if rv.Kind() == reflect.String && t == durationType {
		d, err := time.ParseDuration(rv.String())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(d), true
	}
	if rv.Kind() == reflect.String && t.Kind() == reflect.String {
		return rv.Convert(t), true
	}
	return reflect.Value{}, false
}

// isNumeric reports whether k is an int, uint, or float kind.
func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
