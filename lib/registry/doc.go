// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry implements the client side of the bundle registry
// protocol: pushing, probing, and fetching .pfb bundles over HTTPS with
// bearer-token authentication.
//
// Uploads are deliberately simple: one POST, no retries, no partial
// resume. A failed push is reported to the operator, who re-runs it.
// Token resolution (ResolveToken) happens before any network I/O, so a
// missing credential fails with a diagnostic instead of a half-started
// upload.
package registry
