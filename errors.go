// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpmw

import "fmt"

// A ConfigError reports a request or client configuration problem which
// no amount of retrying can repair, for example a request whose
// streaming body cannot be replayed when a retrying middleware needs to
// clone it. A ConfigError is surfaced immediately and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "httpmw: " + e.Reason
}

// A TransportError wraps an error reported by the underlying transport
// while sending a request or reading the response body. Depending on
// its cause it may be transient (connection refused, timeout) or fatal
// (malformed request); classification is the retry strategy's job, not
// this type's.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "httpmw: transport: " + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying transport error was a timeout.
func (e *TransportError) Timeout() bool {
	t, ok := e.Err.(interface{ Timeout() bool })
	return ok && t.Timeout()
}

// A MiddlewareError wraps an error raised by a middleware itself,
// unrelated to the transport. The default retry strategy treats
// middleware errors as fatal.
type MiddlewareError struct {
	Err error
}

func (e *MiddlewareError) Error() string {
	return "httpmw: middleware: " + e.Err.Error()
}

// Unwrap returns the underlying middleware error.
func (e *MiddlewareError) Unwrap() error {
	return e.Err
}

// A StatusError is produced by Response.ErrorForStatus and
// Response.ErrorForStatusRef when the response carries a 4xx or 5xx
// status code. It records the status code and the final URL so callers
// can branch on the code without keeping the response around.
type StatusError struct {
	// StatusCode is the HTTP status code which triggered the error,
	// always in the range 400-599.
	StatusCode int
	// Status is the full status line text, e.g. "404 Not Found".
	Status string
	// URL is the final URL the response was received from.
	URL string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpmw: HTTP status error %q for %s", e.Status, e.URL)
}
