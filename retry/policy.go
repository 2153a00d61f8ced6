// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import "time"

// A Decision is the result of consulting a Policy after a transient
// failure: either retry no earlier than ExecuteAfter, or give up.
// Decisions are produced fresh on every consultation and never cached.
type Decision struct {
	// Retry indicates whether another attempt should be made.
	Retry bool
	// ExecuteAfter is the earliest instant at which the next attempt
	// should start. It is only meaningful when Retry is true.
	ExecuteAfter time.Time
}

// RetryAfter returns a Decision to retry no earlier than t.
func RetryAfter(t time.Time) Decision {
	return Decision{Retry: true, ExecuteAfter: t}
}

// DoNotRetry returns a Decision to give up.
func DoNotRetry() Decision {
	return Decision{}
}

// A Policy decides whether a transient failure should be retried and
// when the next attempt should start. It is a pure decision function:
// everything it needs is passed in, so for a fixed pair of arguments it
// must always return an equivalent decision.
//
// The start parameter is the start time of the logical request's first
// attempt. The pastRetries parameter is the number of retries which
// have already happened, so it is 0 when the policy is consulted after
// the initial attempt.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
type Policy interface {
	ShouldRetry(start time.Time, pastRetries int) Decision
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as retry policies.
type PolicyFunc func(start time.Time, pastRetries int) Decision

// ShouldRetry calls f(start, pastRetries).
func (f PolicyFunc) ShouldRetry(start time.Time, pastRetries int) Decision {
	return f(start, pastRetries)
}

// Never is a policy that never retries. It is useful if you want a
// retry middleware in the chain for its bookkeeping but no actual
// retries.
var Never Policy = PolicyFunc(func(_ time.Time, _ int) Decision {
	return DoNotRetry()
})

// FixedDelay returns a policy that retries up to maxRetries times with
// a constant delay between attempts. A delay of zero retries
// immediately, which is mostly useful in tests.
func FixedDelay(delay time.Duration, maxRetries int) Policy {
	if delay < 0 {
		panic("httpmw/retry: negative delay")
	}
	if maxRetries < 0 {
		panic("httpmw/retry: negative max retries")
	}
	return PolicyFunc(func(_ time.Time, pastRetries int) Decision {
		if pastRetries >= maxRetries {
			return DoNotRetry()
		}
		return RetryAfter(time.Now().Add(delay))
	})
}
