// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient categorizes errors by transience: whether a failed
// HTTP request attempt has any prospect of succeeding if it is retried.
// The retry package's default strategy uses Categorize to decide which
// transport errors are worth retrying.
package transient
