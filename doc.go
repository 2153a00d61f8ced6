// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpmw provides an HTTP client with a composable middleware
chain: an ordered set of interceptors which can observe, modify,
short-circuit, or retry outbound requests and their responses.

Build a Client from any HTTPDoer (typically an http.Client) and the
middlewares you want, then send requests through it:

	client := httpmw.NewClientBuilder(nil).
		With(traceware.New()).
		With(retry.New(retry.NewBackoff().BuildWithMaxRetries(3))).
		Build()
	res, err := client.Get("https://www.example.com")
	...
	body, err := res.Text()

A middleware implements a single Handle method taking the request, the
per-request extension store, and a Next cursor over the remainder of
the chain:

	type authMW struct{ token string }

	func (m authMW) Handle(req *http.Request, ext *httpmw.Extensions, next httpmw.Next) (*httpmw.Response, error) {
		req.Header.Set("Authorization", "Bearer "+m.token)
		return next.Run(req, ext)
	}

Middlewares run in registration order on the way in and reverse order
on the way out, so a tracing middleware registered before a retry
middleware wraps one span around all retry attempts.

The retry subpackage provides the transient-failure retry middleware
with pluggable classification strategies and backoff policies. The
transient subpackage categorizes transport errors. The traceware and
logware subpackages provide OpenTelemetry tracing and zerolog logging
middlewares.
*/
package httpmw
