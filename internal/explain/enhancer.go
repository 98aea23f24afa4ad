// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package explain

import (
	"context"
)

// Enhancer rewrites a deterministic explanation into friendlier prose.
//
// Implementations must treat the rewrite as advisory: callers fall
// back to the raw text on any error, and the enhanced text never
// changes the recommendation itself.
type Enhancer interface {
	Enhance(ctx context.Context, raw string) (string, error)
}

// Passthrough is the Enhancer used when AI enhancement is disabled.
// It returns the deterministic text unchanged.
type Passthrough struct{}

// Enhance returns raw unchanged.
func (Passthrough) Enhance(_ context.Context, raw string) (string, error) {
	return raw, nil
}
