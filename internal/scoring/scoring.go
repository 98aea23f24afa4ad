// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

// Package scoring implements the deterministic numeric engine behind
// provider recommendations: preference normalization, weighted
// scoring, regional modifiers, the budget cost penalty, mock cost
// estimation, and confidence computation.
//
// Every stage rounds its output (scores to 4 decimal places, costs to
// whole dollars, confidence to 1 decimal place) so results are stable
// across platforms. All provider iteration follows catalog.Providers;
// the enumeration order is the tie-break.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/cloudcompass/internal/catalog"
)

// ErrInvalidIntensity is returned when a qualitative preference holds
// a value outside low/medium/high.
var ErrInvalidIntensity = errors.New("invalid intensity value")

// Intensity scale: qualitative levels map onto 3/6/9 and are
// normalized against the top of the scale.
const (
	intensityLow    = 3.0
	intensityMedium = 6.0
	intensityHigh   = 9.0
	intensityScale  = 9.0
)

// DefaultIntensity is the raw intensity assumed for an absent
// preference ("medium").
const DefaultIntensity = intensityMedium

// round4 rounds to 4 decimal places. Applied after every additive
// stage so intermediate drift cannot accumulate.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// round1 rounds to 1 decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// NormalizeIntensity converts a qualitative preference into a [0,1]
// intensity. An empty value is treated as "medium"; anything else
// outside the scale is an error.
func NormalizeIntensity(value string) (float64, error) {
	switch value {
	case "":
		return intensityMedium / intensityScale, nil
	case "low":
		return intensityLow / intensityScale, nil
	case "medium":
		return intensityMedium / intensityScale, nil
	case "high":
		return intensityHigh / intensityScale, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidIntensity, value)
	}
}

// RawIntensity returns the unnormalized 3/6/9 intensity for a
// qualitative preference, defaulting to medium. Used by the
// explanation engine's feature ranking.
func RawIntensity(value string) float64 {
	switch value {
	case "low":
		return intensityLow
	case "high":
		return intensityHigh
	default:
		return intensityMedium
	}
}

// SelectWeights returns the effective feature weights for a request.
//
// Overrides are accepted only as a complete, sane set: all five
// features present, every value non-negative, and a positive sum.
// Anything less falls back to the catalog defaults without error;
// a partial override silently skewing the ranking would be worse
// than ignoring it. Accepted overrides are re-normalized to sum 1.
func SelectWeights(overrides map[string]float64) map[string]float64 {
	if overrides == nil {
		return catalog.DefaultWeights()
	}
	sum := 0.0
	for _, feature := range catalog.Features {
		v, ok := overrides[feature]
		if !ok || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return catalog.DefaultWeights()
		}
		sum += v
	}
	if sum <= 0 {
		return catalog.DefaultWeights()
	}
	out := make(map[string]float64, len(catalog.Features))
	for _, feature := range catalog.Features {
		out[feature] = overrides[feature] / sum
	}
	return out
}

// Score computes the weighted score for every provider.
//
// intensities maps feature name to the normalized [0,1] preference
// intensity; weights maps feature name to its effective weight. Each
// provider's score is the sum over features of
// weight * intensity * catalog feature score, rounded to 4dp.
func Score(intensities, weights map[string]float64) map[string]float64 {
	scores := make(map[string]float64, len(catalog.Providers))
	for _, provider := range catalog.Providers {
		total := 0.0
		for _, feature := range catalog.Features {
			total += weights[feature] * intensities[feature] * float64(catalog.FeatureScore(provider, feature))
		}
		scores[provider] = round4(total)
	}
	return scores
}

// ApplyRegionalModifiers adds the per-provider modifier for the given
// region in place. Unknown or empty regions leave scores untouched.
func ApplyRegionalModifiers(scores map[string]float64, region string) {
	mods := catalog.RegionModifiers(region)
	if mods == nil {
		return
	}
	for _, provider := range catalog.Providers {
		if _, ok := scores[provider]; !ok {
			continue
		}
		scores[provider] = round4(scores[provider] + mods[provider])
	}
}

// ApplyCostPenalty subtracts a cost-sensitivity penalty in place when
// the budget preference is "high". The penalty scales linearly with
// each provider's estimated cost relative to the most expensive one:
// the priciest provider loses 0.2, cheaper ones proportionally less.
func ApplyCostPenalty(scores, estimates map[string]float64, budget string) {
	if budget != "high" {
		return
	}
	maxCost := 0.0
	for _, provider := range catalog.Providers {
		if c := estimates[provider]; c > maxCost {
			maxCost = c
		}
	}
	if maxCost == 0 {
		return
	}
	for _, provider := range catalog.Providers {
		if _, ok := scores[provider]; !ok {
			continue
		}
		penalty := 0.2 * (estimates[provider] / maxCost)
		scores[provider] = round4(scores[provider] - penalty)
	}
}

// EstimateCosts produces mock monthly cost estimates per provider.
//
// The base compute+storage price is scaled by a multiplier derived
// from the preferences: heavier scalability and security demands and
// a low-expertise team (managed services) all push the price up.
// Estimates are rounded to whole dollars.
func EstimateCosts(scalability, security, teamExpertise string) map[string]float64 {
	if scalability == "" {
		scalability = "medium"
	}
	if security == "" {
		security = "medium"
	}
	if teamExpertise == "" {
		teamExpertise = "medium"
	}

	multiplier := 1.0
	switch scalability {
	case "high":
		multiplier += 0.30
	case "medium":
		multiplier += 0.15
	}
	switch security {
	case "high":
		multiplier += 0.20
	case "medium":
		multiplier += 0.10
	}
	if teamExpertise == "low" {
		multiplier += 0.10
	}

	estimates := make(map[string]float64, len(catalog.Providers))
	for _, provider := range catalog.Providers {
		p, ok := catalog.PricingFor(provider)
		if !ok {
			estimates[provider] = 0
			continue
		}
		estimates[provider] = math.Round((p.BaseCompute + p.BaseStorage) * multiplier)
	}
	return estimates
}

// Confidence derives a confidence percentage and label from the gap
// between the top two provider scores. With fewer than two scored
// providers there is nothing to compare and confidence is zero.
func Confidence(scores map[string]float64) (float64, string) {
	if len(scores) < 2 {
		return 0, "Low"
	}
	top, second := math.Inf(-1), math.Inf(-1)
	counted := 0
	for _, provider := range catalog.Providers {
		s, ok := scores[provider]
		if !ok {
			continue
		}
		counted++
		if s > top {
			second = top
			top = s
		} else if s > second {
			second = s
		}
	}
	if counted < 2 {
		return 0, "Low"
	}
	diff := top - second

	label := "Low"
	switch {
	case diff >= 1.5:
		label = "High"
	case diff >= 0.8:
		label = "Moderate"
	}

	percent := diff / 3 * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return round1(percent), label
}

// Best returns the highest-scoring provider. Ties go to the provider
// enumerated first in catalog.Providers.
func Best(scores map[string]float64) string {
	best := ""
	bestScore := math.Inf(-1)
	for _, provider := range catalog.Providers {
		s, ok := scores[provider]
		if !ok {
			continue
		}
		if s > bestScore {
			best = provider
			bestScore = s
		}
	}
	return best
}
