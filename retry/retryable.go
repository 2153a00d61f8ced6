// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/httpmw/httpmw"
	"github.com/httpmw/httpmw/transient"
)

// Retryable is the classification of a completed request attempt.
type Retryable int

const (
	// NoRetry means the attempt needs no retry: either it succeeded,
	// or the strategy does not consider its outcome retryable (for
	// example a 404 response).
	NoRetry Retryable = iota
	// Transient means the attempt failed in a way that might resolve
	// in the future, so a retry is worthwhile.
	Transient
	// Fatal means the attempt failed in a way that retrying cannot
	// repair.
	Fatal
)

// String returns the classification name.
func (r Retryable) String() string {
	switch r {
	case NoRetry:
		return "NoRetry"
	case Transient:
		return "Transient"
	case Fatal:
		return "Fatal"
	default:
		return "Retryable(?)"
	}
}

// A Strategy classifies the outcome of a completed request attempt.
// Exactly one of res and err is non-nil. For a fixed outcome a
// strategy must always return the same classification.
//
// Implementations of Strategy must be safe for concurrent use by
// multiple goroutines.
type Strategy interface {
	Classify(res *httpmw.Response, err error) Retryable
}

// The StrategyFunc type is an adapter to allow the use of ordinary
// functions as classification strategies.
type StrategyFunc func(res *httpmw.Response, err error) Retryable

// Classify calls f(res, err).
func (f StrategyFunc) Classify(res *httpmw.Response, err error) Retryable {
	return f(res, err)
}

// DefaultStrategy is the classification strategy used when none is
// configured. A response is Transient if its status code is 408
// (Request Timeout), 500, 502, 503, or 504, and NoRetry for any other
// status code. A transport error is classified by ClassifyTransport.
// Middleware-raised and configuration errors are Fatal.
var DefaultStrategy Strategy = StrategyFunc(defaultClassify)

func defaultClassify(res *httpmw.Response, err error) Retryable {
	if err != nil {
		var cfgErr *httpmw.ConfigError
		if errors.As(err, &cfgErr) {
			return Fatal
		}
		var mwErr *httpmw.MiddlewareError
		if errors.As(err, &mwErr) {
			return Fatal
		}
		var tErr *httpmw.TransportError
		if errors.As(err, &tErr) {
			return ClassifyTransport(tErr)
		}
		return Fatal
	}
	if res == nil {
		return NoRetry
	}
	switch res.StatusCode() {
	case 408, 500, 502, 503, 504:
		return Transient
	default:
		return NoRetry
	}
}

// ClassifyTransport classifies a transport-level error. Errors that
// are recoverable in principle (timeouts, refused or reset
// connections, truncated responses, dial and DNS failures) are
// Transient. A cancelled context, and anything else, for example a
// request the transport could not even construct, is Fatal.
func ClassifyTransport(err error) Retryable {
	if errors.Is(err, context.Canceled) {
		return Fatal
	}
	if transient.Categorize(err) != transient.Not {
		return Transient
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Transient
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Transient
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Transient
	}
	return Fatal
}
