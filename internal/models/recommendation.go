// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package models

// RecommendRequest represents the JSON body accepted by POST /api/v1/recommend.
//
// The seven qualitative fields are required and must be one of "low",
// "medium", or "high" (industry has its own value set). Values are
// trimmed and lowercased before validation. Region and weights are
// optional; unusable values are ignored rather than rejected.
//
// The required fields are pointers so the handler can tell an absent
// key (a missing-fields error) from a present but empty or invalid
// value (an invalid-value error).
//
// Example:
//
//	{
//	  "budget": "high",
//	  "scalability": "medium",
//	  "security": "high",
//	  "ease_of_use": "low",
//	  "free_tier": "medium",
//	  "team_expertise": "medium",
//	  "industry": "fintech",
//	  "region": "us",
//	  "weights": {"budget": 2, "scalability": 1, "security": 3, "ease_of_use": 1, "free_tier": 1}
//	}
type RecommendRequest struct {
	Budget        *string            `json:"budget"`
	Scalability   *string            `json:"scalability"`
	Security      *string            `json:"security"`
	EaseOfUse     *string            `json:"ease_of_use"`
	FreeTier      *string            `json:"free_tier"`
	TeamExpertise *string            `json:"team_expertise"`
	Industry      *string            `json:"industry"`
	Region        string             `json:"region,omitempty"`
	Weights       map[string]float64 `json:"weights,omitempty"`
}

// Confidence describes how decisive the provider ranking was.
//
// The percent is derived from the gap between the top two provider
// scores; the level buckets that gap into "High", "Moderate", or "Low".
type Confidence struct {
	ConfidencePercent float64 `json:"confidence_percent"`
	ConfidenceLevel   string  `json:"confidence_level"`
}

// RecommendResponse is the recommendation payload placed in APIResponse.Data.
//
// FinalScores and EstimatedCosts carry one entry per known provider.
// Explanation and ExplanationRaw hold the same deterministic sentences;
// ExplanationEnhanced is the AI-rewritten narrative, or the joined raw
// sentences when enhancement is disabled or unavailable.
type RecommendResponse struct {
	RecommendedProvider     string             `json:"recommended_provider"`
	RecommendedServiceModel string             `json:"recommended_service_model"`
	FinalScores             map[string]float64 `json:"final_scores"`
	EstimatedCosts          map[string]float64 `json:"estimated_costs"`
	Confidence              Confidence         `json:"confidence"`
	Explanation             []string           `json:"explanation"`
	ExplanationRaw          []string           `json:"explanation_raw"`
	ExplanationEnhanced     string             `json:"explanation_enhanced"`
}

// HealthResponse is returned by the health, liveness, and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// UsageResponse is returned for GET requests to the recommend endpoint,
// pointing callers at the POST contract.
type UsageResponse struct {
	Message        string   `json:"message"`
	Method         string   `json:"method"`
	RequiredFields []string `json:"required_fields"`
	OptionalFields []string `json:"optional_fields"`
}
