// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/httpmw/httpmw"
)

// Count is deposited in a successful response's extension store when
// at least one retry happened, recording the number of retries
// performed before that response was obtained.
//
//	res, err := client.Do(req)
//	...
//	if n, ok := httpmw.GetExt[retry.Count](res.Extensions()); ok {
//		// request succeeded after n retries
//	}
type Count int

// An ExhaustedError wraps the error from the final attempt of a
// logical request which failed after at least one retry. Requests
// which fail on the first attempt surface their error unwrapped, so a
// caller can always recover the retry count: absent ExhaustedError it
// is zero.
type ExhaustedError struct {
	// Retries is the number of retries performed before giving up. It
	// is always at least 1.
	Retries int
	// Err is the outcome of the final attempt.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("httpmw/retry: request failed after %d retries: %v", e.Retries, e.Err)
}

// Unwrap returns the final attempt's error.
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// An Option configures the retry middleware.
type Option func(*Middleware)

// WithStrategy replaces DefaultStrategy as the middleware's outcome
// classification strategy.
func WithStrategy(s Strategy) Option {
	if s == nil {
		panic("httpmw/retry: nil strategy")
	}
	return func(m *Middleware) {
		m.strategy = s
	}
}

// WithLogger sets the logger for retry events. By default retry events
// are not logged.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Middleware) {
		m.log = log
	}
}

// WithLogLevel sets the level retry events are logged at. The default
// is zerolog.WarnLevel.
func WithLogLevel(level zerolog.Level) Option {
	return func(m *Middleware) {
		m.level = level
	}
}

// WithSleep replaces the middleware's sleep function. The default
// sleeps on a timer and wakes early, returning the context's error, if
// the request context is cancelled. Tests substitute a virtual clock
// here so retry schedules can be exercised without real waiting.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	if sleep == nil {
		panic("httpmw/retry: nil sleep")
	}
	return func(m *Middleware) {
		m.sleep = sleep
	}
}

// WithClock replaces the middleware's time source, used to timestamp
// the start of the logical request and to measure the wait until a
// decision's ExecuteAfter instant. Tests use it together with
// WithSleep; production code should leave the default, time.Now.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("httpmw/retry: nil clock")
	}
	return func(m *Middleware) {
		m.now = now
	}
}

// Middleware retries requests whose outcome is classified as
// transient. It sits in a client's chain like any other middleware and
// invokes the remainder of the chain once per attempt, so middlewares
// registered after it run on every attempt while middlewares
// registered before it see only the final outcome.
//
// Every attempt sends a duplicate of the original request. A request
// whose body cannot be duplicated (a one-shot stream) fails with a
// *httpmw.ConfigError before any attempt is made, including the first;
// build requests with httpmw.NewRequest, or any in-memory body, to
// keep them replayable.
//
// The middleware imposes no attempt cap of its own. Bounding the loop
// is the policy's job, by maximum retries or maximum elapsed time.
type Middleware struct {
	policy   Policy
	strategy Strategy
	log      zerolog.Logger
	level    zerolog.Level
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// New returns a retry middleware driven by the given policy. By
// default outcomes are classified by DefaultStrategy and retry events
// are not logged; see the Option constructors.
func New(policy Policy, opts ...Option) *Middleware {
	if policy == nil {
		panic("httpmw/retry: nil policy")
	}
	m := &Middleware{
		policy:   policy,
		strategy: DefaultStrategy,
		log:      zerolog.Nop(),
		level:    zerolog.WarnLevel,
		sleep:    sleepContext,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle runs the retry loop: duplicate the request, invoke the rest
// of the chain, classify the outcome, consult the policy, sleep, and
// go again. The loop is a plain loop with an accumulator, not
// recursion, so a long retry schedule cannot grow the call stack.
//
// The extension store is shared across all attempts of the logical
// request and is not reset between them, so a middleware running in a
// later attempt can observe values written during an earlier one.
func (m *Middleware) Handle(req *http.Request, ext *httpmw.Extensions, next httpmw.Next) (*httpmw.Response, error) {
	start := m.now()
	pastRetries := 0
	for {
		attempt := httpmw.TryClone(req)
		if attempt == nil {
			return nil, &httpmw.ConfigError{
				Reason: "request is not cloneable; are you passing a streaming body?",
			}
		}

		res, err := next.Run(attempt, ext)

		if m.strategy.Classify(res, err) == Transient {
			if decision := m.policy.ShouldRetry(start, pastRetries); decision.Retry {
				wait := decision.ExecuteAfter.Sub(m.now())
				if wait < 0 {
					wait = 0
				}
				m.log.WithLevel(m.level).
					Str("method", req.Method).
					Stringer("url", req.URL).
					Int("past_retries", pastRetries).
					Dur("wait", wait).
					Msg("retrying transient request failure")
				if sleepErr := m.sleep(req.Context(), wait); sleepErr != nil {
					return nil, sleepErr
				}
				pastRetries++
				continue
			}
		}

		// Surface the outcome, annotated with the retry count when at
		// least one retry happened.
		if err != nil {
			if pastRetries > 0 {
				return nil, &ExhaustedError{Retries: pastRetries, Err: err}
			}
			return nil, err
		}
		if pastRetries > 0 {
			httpmw.PutExt(res.Extensions(), Count(pastRetries))
		}
		return res, nil
	}
}

// sleepContext is the default sleep function. It waits for d, or less
// if ctx is cancelled first, in which case it returns the context's
// error.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
