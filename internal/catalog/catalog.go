// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

// Package catalog holds the static domain data the recommendation
// engine scores against: provider feature profiles, default feature
// weights, regional modifiers, mock pricing, and the service model
// rule tables.
//
// All tables are package-level and immutable after init. Accessors
// that hand out maps return copies so callers cannot corrupt the
// shared state. Iteration over providers and features always uses
// the fixed Providers and Features slices; map iteration order is
// never relied on.
package catalog

// Provider identifiers. Providers is the canonical enumeration order
// and doubles as the deterministic tie-break: when two providers tie
// on score, the earlier entry wins.
const (
	ProviderAWS   = "aws"
	ProviderAzure = "azure"
	ProviderGCP   = "gcp"
)

// Providers enumerates the supported providers in canonical order.
var Providers = []string{ProviderAWS, ProviderAzure, ProviderGCP}

// Feature identifiers in canonical order. The order is used as the
// tie-break when ranking features for explanations.
const (
	FeatureBudget      = "budget"
	FeatureScalability = "scalability"
	FeatureSecurity    = "security"
	FeatureEaseOfUse   = "ease_of_use"
	FeatureFreeTier    = "free_tier"
)

// Features enumerates the scored features in canonical order.
var Features = []string{
	FeatureBudget,
	FeatureScalability,
	FeatureSecurity,
	FeatureEaseOfUse,
	FeatureFreeTier,
}

// Profile describes one provider's standing on each feature (0-10)
// plus the headline strengths surfaced in explanations.
type Profile struct {
	Scores    map[string]int
	Strengths []string
}

// profiles is keyed by provider. Scores come from published capability
// comparisons and are intentionally coarse.
var profiles = map[string]Profile{
	ProviderAWS: {
		Scores: map[string]int{
			FeatureScalability: 10,
			FeatureSecurity:    9,
			FeatureEaseOfUse:   7,
			FeatureBudget:      6,
			FeatureFreeTier:    5,
		},
		Strengths: []string{
			"Broadest service catalog and global footprint",
			"Strong enterprise and compliance offerings",
			"Leading scalability and security",
		},
	},
	ProviderAzure: {
		Scores: map[string]int{
			FeatureSecurity:    10,
			FeatureScalability: 8,
			FeatureEaseOfUse:   6,
			FeatureBudget:      5,
			FeatureFreeTier:    4,
		},
		Strengths: []string{
			"Deep integration with Microsoft stack and hybrid cloud",
			"Strong compliance and government offerings",
			"Top-tier security and enterprise focus",
		},
	},
	ProviderGCP: {
		Scores: map[string]int{
			FeatureFreeTier:    10,
			FeatureBudget:      9,
			FeatureEaseOfUse:   9,
			FeatureScalability: 7,
			FeatureSecurity:    6,
		},
		Strengths: []string{
			"Strong data and ML/AI capabilities",
			"Generous free tier and sustained-use discounts",
			"Cost-effective and developer-friendly",
		},
	},
}

// defaultWeights sum to 1.0. Callers may override them per request;
// overrides are re-normalized by the scoring package.
var defaultWeights = map[string]float64{
	FeatureBudget:      0.25,
	FeatureScalability: 0.20,
	FeatureSecurity:    0.25,
	FeatureEaseOfUse:   0.15,
	FeatureFreeTier:    0.15,
}

// regionModifiers are additive score adjustments by region, then
// provider. A region absent from this table contributes nothing.
var regionModifiers = map[string]map[string]float64{
	"india": {
		ProviderAWS:   0.2,
		ProviderAzure: 0.3,
		ProviderGCP:   0.1,
	},
	"us": {
		ProviderAWS:   0.3,
		ProviderAzure: 0.2,
		ProviderGCP:   0.2,
	},
	"europe": {
		ProviderAWS:   0.2,
		ProviderAzure: 0.3,
		ProviderGCP:   0.2,
	},
}

// Pricing is the mock monthly price sheet (USD) cost estimation
// multiplies against.
type Pricing struct {
	BaseCompute float64
	BaseStorage float64
}

var pricing = map[string]Pricing{
	ProviderAWS:   {BaseCompute: 120, BaseStorage: 40},
	ProviderAzure: {BaseCompute: 110, BaseStorage: 45},
	ProviderGCP:   {BaseCompute: 100, BaseStorage: 35},
}

// ProfileFor returns the feature profile for a provider. The returned
// struct shares no mutable state with the catalog.
func ProfileFor(provider string) (Profile, bool) {
	p, ok := profiles[provider]
	if !ok {
		return Profile{}, false
	}
	scores := make(map[string]int, len(p.Scores))
	for k, v := range p.Scores {
		scores[k] = v
	}
	strengths := make([]string, len(p.Strengths))
	copy(strengths, p.Strengths)
	return Profile{Scores: scores, Strengths: strengths}, true
}

// FeatureScore returns a provider's raw 0-10 score for a feature,
// or 0 when either key is unknown.
func FeatureScore(provider, feature string) int {
	p, ok := profiles[provider]
	if !ok {
		return 0
	}
	return p.Scores[feature]
}

// Strengths returns the headline strengths for a provider, or nil for
// an unknown provider.
func Strengths(provider string) []string {
	p, ok := profiles[provider]
	if !ok {
		return nil
	}
	out := make([]string, len(p.Strengths))
	copy(out, p.Strengths)
	return out
}

// DefaultWeights returns a copy of the default feature weights.
func DefaultWeights() map[string]float64 {
	out := make(map[string]float64, len(defaultWeights))
	for k, v := range defaultWeights {
		out[k] = v
	}
	return out
}

// RegionModifiers returns the per-provider additive modifiers for a
// region, or nil when the region is not recognized.
func RegionModifiers(region string) map[string]float64 {
	mods, ok := regionModifiers[region]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(mods))
	for k, v := range mods {
		out[k] = v
	}
	return out
}

// PricingFor returns the mock price sheet entry for a provider.
func PricingFor(provider string) (Pricing, bool) {
	p, ok := pricing[provider]
	return p, ok
}
