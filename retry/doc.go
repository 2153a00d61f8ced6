// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package retry provides a middleware that retries transient request
failures, together with the two capabilities that drive it: a Strategy
classifies each attempt's outcome as transient, fatal, or not needing a
retry, and a Policy decides whether and when the next attempt runs.

Both capabilities are parameters, not subclasses: supply any Strategy
or Policy implementation and the middleware stays unchanged.

	policy := retry.NewBackoff().
		Bounds(time.Second, time.Minute).
		BuildWithMaxRetries(3)
	client := httpmw.NewClientBuilder(nil).
		With(retry.New(policy)).
		Build()

A successful response obtained after retries carries retry.Count in its
extension store; a request that fails after retries returns
*retry.ExhaustedError. Either way the caller can recover how many
retries were performed.
*/
package retry
