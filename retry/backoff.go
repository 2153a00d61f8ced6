// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"
)

// Jitter selects how an exponential backoff delay is randomized to
// avoid synchronized retry storms across many clients.
type Jitter int

const (
	// JitterFull replaces the computed delay with a uniformly random
	// duration between zero and the computed delay. This is the "Full
	// Jitter" approach described in:
	// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
	JitterFull Jitter = iota
	// JitterNone uses the computed delay as-is.
	JitterNone
	// JitterBounded picks a uniformly random duration between the
	// policy's minimum delay and the computed delay, so the wait never
	// drops below the configured floor.
	JitterBounded
)

// A Backoff builds exponential backoff retry policies.
//
// The unjittered delay before retry number n (zero-based) is base^n
// seconds, clamped to the configured bounds, then randomized according
// to the jitter mode. The default configuration uses base 2, bounds of
// 1 second and 30 minutes, and full jitter.
//
// Every policy needs a termination bound, so Backoff has no plain
// Build method: finish with BuildWithMaxRetries or BuildWithMaxElapsed.
//
//	policy := retry.NewBackoff().
//		Bounds(500*time.Millisecond, 10*time.Second).
//		Jitter(retry.JitterBounded).
//		BuildWithMaxRetries(5)
type Backoff struct {
	min    time.Duration
	max    time.Duration
	base   int
	jitter Jitter
	rand   *rand.Rand
	now    func() time.Time
}

// NewBackoff returns a builder with the default configuration.
func NewBackoff() *Backoff {
	return &Backoff{
		min:    time.Second,
		max:    30 * time.Minute,
		base:   2,
		jitter: JitterFull,
	}
}

// Bounds sets the minimum and maximum delay between attempts. Min must
// be positive and max must be at least equal to min.
func (b *Backoff) Bounds(min, max time.Duration) *Backoff {
	if min < 1 {
		panic("httpmw/retry: min must be positive")
	}
	if max < min {
		panic("httpmw/retry: max must be at least min")
	}
	b.min = min
	b.max = max
	return b
}

// Base sets the exponent base. It must be at least 1.
func (b *Backoff) Base(base int) *Backoff {
	if base < 1 {
		panic("httpmw/retry: base must be positive")
	}
	b.base = base
	return b
}

// Jitter sets the jitter mode.
func (b *Backoff) Jitter(j Jitter) *Backoff {
	b.jitter = j
	return b
}

// Rand sets the randomness source used for jitter. You may specify
// either a random number generator seed value (as a time.Time, int, or
// int64) or a random number generator (as a rand.Source or *rand.Rand).
// If Rand is not called, the built policy seeds its own generator from
// the wall clock.
func (b *Backoff) Rand(jitter interface{}) *Backoff {
	b.rand = jitterToRand(jitter)
	return b
}

// Clock sets the policy's time source. It exists so tests can exercise
// elapsed-time bounds against a virtual clock; production code should
// leave the default, time.Now.
func (b *Backoff) Clock(now func() time.Time) *Backoff {
	if now == nil {
		panic("httpmw/retry: nil clock")
	}
	b.now = now
	return b
}

// BuildWithMaxRetries returns a policy bounded by a maximum number of
// retries: once n retries have happened, ShouldRetry reports
// DoNotRetry.
func (b *Backoff) BuildWithMaxRetries(n int) Policy {
	if n < 0 {
		panic("httpmw/retry: negative max retries")
	}
	return b.build(n, 0)
}

// BuildWithMaxElapsed returns a policy bounded by total elapsed
// wall-clock time since the logical request started: once d has
// passed, ShouldRetry reports DoNotRetry.
func (b *Backoff) BuildWithMaxElapsed(d time.Duration) Policy {
	if d < 1 {
		panic("httpmw/retry: max elapsed must be positive")
	}
	return b.build(-1, d)
}

func (b *Backoff) build(maxRetries int, maxElapsed time.Duration) Policy {
	r := b.rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := b.now
	if now == nil {
		now = time.Now
	}
	return &exponentialBackoff{
		min:        b.min,
		max:        b.max,
		base:       b.base,
		jitter:     b.jitter,
		maxRetries: maxRetries,
		maxElapsed: maxElapsed,
		rand:       r,
		now:        now,
	}
}

type exponentialBackoff struct {
	min        time.Duration
	max        time.Duration
	base       int
	jitter     Jitter
	maxRetries int           // -1 means unbounded
	maxElapsed time.Duration // 0 means unbounded
	now        func() time.Time
	lock       sync.Mutex
	rand       *rand.Rand
}

func (p *exponentialBackoff) ShouldRetry(start time.Time, pastRetries int) Decision {
	if p.maxRetries >= 0 && pastRetries >= p.maxRetries {
		return DoNotRetry()
	}
	now := p.now()
	if p.maxElapsed > 0 && now.Sub(start) >= p.maxElapsed {
		return DoNotRetry()
	}
	return RetryAfter(now.Add(p.delay(pastRetries)))
}

func (p *exponentialBackoff) delay(pastRetries int) time.Duration {
	maxSecs := int64(p.max / time.Second)
	secs := int64(1)
	for i := 0; i < pastRetries; i++ {
		secs *= int64(p.base)
		if secs > maxSecs {
			// Saturate: the clamp below takes over.
			secs = maxSecs + 1
			break
		}
	}

	d := time.Duration(secs) * time.Second
	if secs > maxSecs || d > p.max {
		d = p.max
	}
	if d < p.min {
		d = p.min
	}

	switch p.jitter {
	case JitterFull:
		return p.randBetween(0, d)
	case JitterBounded:
		return p.randBetween(p.min, d)
	default:
		return d
	}
}

func (p *exponentialBackoff) randBetween(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	return lo + time.Duration(p.rand.Int63n(int64(hi-lo)+1))
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("httpmw/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("httpmw/retry: invalid jitter type")
	}
	return rand.New(s)
}
