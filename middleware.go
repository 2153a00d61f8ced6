// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import "net/http"

// A Middleware intercepts an outbound HTTP request on its way to the
// transport and the response on its way back.
//
// A middleware may inspect or modify the request before passing it on
// via next.Run; inspect or modify the result afterward; decline to call
// next at all and return its own result (short-circuit); or call next
// more than once, as a retrying middleware does. Middlewares installed
// on a client run in registration order on the way in and in reverse
// order on the way out.
//
// Returning an error ends the chain for the current attempt, but outer
// middlewares still observe the error as the attempt's outcome and may
// act on it.
//
// Implementations of Middleware must be safe for concurrent use by
// multiple goroutines: one instance is shared by every request the
// client sends.
type Middleware interface {
	Handle(req *http.Request, ext *Extensions, next Next) (*Response, error)
}

// The MiddlewareFunc type is an adapter to allow the use of ordinary
// functions as middlewares. If f is a function with the appropriate
// signature, MiddlewareFunc(f) is a Middleware that calls f.
type MiddlewareFunc func(req *http.Request, ext *Extensions, next Next) (*Response, error)

// Handle calls f(req, ext, next).
func (f MiddlewareFunc) Handle(req *http.Request, ext *Extensions, next Next) (*Response, error) {
	return f(req, ext, next)
}

// A TransportFunc is the terminal step of a middleware chain. It sends
// the request over the underlying transport and materializes the
// response.
type TransportFunc func(req *http.Request, ext *Extensions) (*Response, error)

// Next is a cursor into the remainder of a middleware chain: the
// middlewares which have not run yet, plus the terminal transport
// step.
//
// Next is a small value sharing a read-only view of the chain, so it is
// cheap to copy and may be invoked any number of times. A retrying
// middleware keeps its Next and calls Run once per attempt.
type Next struct {
	middlewares []Middleware
	transport   TransportFunc
}

// NewNext returns a cursor over middlewares ending in transport. It is
// rarely needed outside tests: Client builds the cursor for each
// request it sends.
func NewNext(middlewares []Middleware, transport TransportFunc) Next {
	if transport == nil {
		panic("httpmw: nil transport")
	}
	return Next{middlewares: middlewares, transport: transport}
}

// Run passes control to the next middleware in the chain, handing it a
// cursor positioned past itself. If no middlewares remain, Run invokes
// the terminal transport step.
func (n Next) Run(req *http.Request, ext *Extensions) (*Response, error) {
	if len(n.middlewares) == 0 {
		return n.transport(req, ext)
	}
	return n.middlewares[0].Handle(req, ext, Next{
		middlewares: n.middlewares[1:],
		transport:   n.transport,
	})
}
