// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import (
	"fmt"
	"net/http"
	"reflect"

	"golang.org/x/net/http/httpguts"
)

// A RequestInitialiser runs once per logical request, before the
// middleware chain, and may prime the request or the extension store.
// Unlike a middleware it never sees the response and never re-runs on
// retries.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type RequestInitialiser interface {
	Init(req *http.Request, ext *Extensions) error
}

// The InitialiserFunc type is an adapter to allow the use of ordinary
// functions as request initialisers.
type InitialiserFunc func(req *http.Request, ext *Extensions) error

// Init calls f(req, ext).
func (f InitialiserFunc) Init(req *http.Request, ext *Extensions) error {
	return f(req, ext)
}

// Extension returns an initialiser that seeds every logical request's
// extension store with val. Use it to hand configuration to a
// middleware deeper in the chain, for example a span name override for
// the tracing middleware.
func Extension(val interface{}) RequestInitialiser {
	if val == nil {
		panic("httpmw: nil extension value")
	}
	return InitialiserFunc(func(_ *http.Request, ext *Extensions) error {
		ext.set(reflect.TypeOf(val), val)
		return nil
	})
}

// Headers returns an initialiser that merges h into every request's
// headers. Header fields already present on the request win. Field
// names and values are validated against RFC 7230; an invalid field
// fails the request with a *ConfigError before any middleware runs.
func Headers(h http.Header) RequestInitialiser {
	return InitialiserFunc(func(req *http.Request, _ *Extensions) error {
		for name, values := range h {
			if !httpguts.ValidHeaderFieldName(name) {
				return &ConfigError{Reason: fmt.Sprintf("invalid header field name %q", name)}
			}
			if _, present := req.Header[http.CanonicalHeaderKey(name)]; present {
				continue
			}
			for _, value := range values {
				if !httpguts.ValidHeaderFieldValue(value) {
					return &ConfigError{Reason: fmt.Sprintf("invalid value for header field %q", name)}
				}
				req.Header.Add(name, value)
			}
		}
		return nil
	})
}
