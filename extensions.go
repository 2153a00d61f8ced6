// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import "reflect"

// Extensions is a type-keyed store of values which travels with a
// logical request through the whole middleware chain. Each middleware
// may read values deposited by earlier middlewares and deposit values
// for later ones, for example a tracing middleware storing the active
// span, or a retry middleware recording the number of retries it
// performed.
//
// At most one value is stored per type: storing a second value of the
// same type replaces the first. Use a named type per piece of data to
// avoid collisions between unrelated middlewares, the same way
// context.WithValue keys are kept private to a package.
//
// The client creates a fresh Extensions for every logical request and
// shares it across all retry attempts of that request. It is never
// reset between attempts, so a middleware running in a later attempt
// observes values written during earlier attempts. Extensions is not
// safe for concurrent use, and never needs to be: it is exclusively
// owned by a single logical request's call tree.
type Extensions struct {
	values map[reflect.Type]interface{}
}

// NewExtensions returns a new, empty extension store.
func NewExtensions() *Extensions {
	return &Extensions{}
}

// Len returns the number of values currently stored.
func (e *Extensions) Len() int {
	return len(e.values)
}

func (e *Extensions) set(t reflect.Type, val interface{}) {
	if e.values == nil {
		e.values = make(map[reflect.Type]interface{})
	}
	e.values[t] = val
}

func (e *Extensions) get(t reflect.Type) (interface{}, bool) {
	val, ok := e.values[t]
	return val, ok
}

func (e *Extensions) delete(t reflect.Type) {
	delete(e.values, t)
}

// typeOf resolves the key type for a type parameter. Going through a
// pointer keeps interface types intact: reflect.TypeOf on an interface
// value would report the dynamic type instead.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// PutExt stores val in e, replacing any previous value of type T.
func PutExt[T any](e *Extensions, val T) {
	e.set(typeOf[T](), val)
}

// GetExt returns the value of type T stored in e, if any. The second
// return value reports whether a value was present.
func GetExt[T any](e *Extensions) (T, bool) {
	val, ok := e.get(typeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// DeleteExt removes the value of type T from e, if present.
func DeleteExt[T any](e *Extensions) {
	e.delete(typeOf[T]())
}
