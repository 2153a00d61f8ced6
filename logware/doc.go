// Copyright 2026 The httpmw Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logware provides structured logging middlewares for httpmw
// clients: a zerolog-based request/response logger and a request-ID
// middleware that tags every attempt of a logical request with the
// same identifier.
package logware
