// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize.
//
// The category Not means the error is not transient from the
// perspective of completing an HTTP request attempt, or in other words
// that a retry after encountering this error is very unlikely to
// succeed. All other categories indicate the error has some prospect
// of success on retry.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness, or the client may succeed
	// on a future attempt.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout() method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection,
	// corresponding to the POSIX error code ECONNREFUSED.
	//
	// Connection refusal can be a permanent condition, but it also
	// happens while the service on the remote host is starting or
	// restarting and not yet listening on its port, so it is
	// classified as transient.
	ConnRefused
	// ConnReset indicates the remote host sent an RST on a previously
	// active TCP connection, corresponding to the POSIX error code
	// ECONNRESET. Resets are common when a service instance behind a
	// load balancer goes down mid-response, so a retry has a high
	// probability of success.
	ConnReset
)

// Categorize returns the transience category of the given error. A nil
// error, and an error that is not transient from the perspective of
// completing an HTTP request attempt, both produce the return value
// Not.
//
// Categorize examines wrapped cause errors contained within err, not
// just err itself. It never consults a Temporary() method, as the
// semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var t hasTimeout
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
