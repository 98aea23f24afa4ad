// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cloudcompass/internal/cache"
	"github.com/tomtom215/cloudcompass/internal/catalog"
	"github.com/tomtom215/cloudcompass/internal/explain"
	"github.com/tomtom215/cloudcompass/internal/logging"
	"github.com/tomtom215/cloudcompass/internal/metrics"
	"github.com/tomtom215/cloudcompass/internal/models"
	"github.com/tomtom215/cloudcompass/internal/rules"
	"github.com/tomtom215/cloudcompass/internal/scoring"
)

// requiredFields lists the request fields whose keys must be present,
// in the order documented to clients and checked for invalid values.
// Missing-field error messages sort the names alphabetically.
var requiredFields = []string{
	"budget",
	"scalability",
	"security",
	"ease_of_use",
	"free_tier",
	"team_expertise",
	"industry",
}

// optionalFields lists the accepted optional request fields.
var optionalFields = []string{"region", "weights"}

// qualitativeLevels is the accepted value set for the six qualitative
// preference fields.
var qualitativeLevels = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

// validIndustries is the accepted value set for the industry field.
// The service model rule table recognizes more industries; these are
// the ones the request contract accepts.
var validIndustries = map[string]bool{
	"general":    true,
	"fintech":    true,
	"healthcare": true,
	"ai":         true,
}

// validRegions is the accepted value set for the optional region field.
// Values outside the set are ignored, not rejected.
var validRegions = map[string]bool{
	"india":  true,
	"us":     true,
	"europe": true,
}

// recommendInput is a validated, normalized recommendation request.
// All string fields are trimmed and lowercased; Region is empty when
// absent or unrecognized.
type recommendInput struct {
	Budget        string
	Scalability   string
	Security      string
	EaseOfUse     string
	FreeTier      string
	TeamExpertise string
	Industry      string
	Region        string
	Weights       map[string]float64
}

// normalize trims and lowercases a request field value.
func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// parseRecommendRequest validates and normalizes a decoded request.
// It returns a client-facing error message when validation fails.
// Absent keys produce a missing-fields error; present but empty or
// out-of-set values produce an invalid-value error for the first
// offending field in declared order.
func parseRecommendRequest(req *models.RecommendRequest) (*recommendInput, string) {
	supplied := map[string]*string{
		"budget":         req.Budget,
		"scalability":    req.Scalability,
		"security":       req.Security,
		"ease_of_use":    req.EaseOfUse,
		"free_tier":      req.FreeTier,
		"team_expertise": req.TeamExpertise,
		"industry":       req.Industry,
	}

	var missing []string
	for _, field := range requiredFields {
		if supplied[field] == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, "Missing required fields: " + strings.Join(missing, ", ") + "."
	}

	values := make(map[string]string, len(supplied))
	for field, v := range supplied {
		values[field] = normalize(*v)
	}

	for _, field := range requiredFields {
		if field == "industry" {
			if !validIndustries[values[field]] {
				return nil, "Invalid value for industry"
			}
			continue
		}
		if !qualitativeLevels[values[field]] {
			return nil, "Invalid value for " + field
		}
	}

	region := normalize(req.Region)
	if !validRegions[region] {
		region = ""
	}

	return &recommendInput{
		Budget:        values["budget"],
		Scalability:   values["scalability"],
		Security:      values["security"],
		EaseOfUse:     values["ease_of_use"],
		FreeTier:      values["free_tier"],
		TeamExpertise: values["team_expertise"],
		Industry:      values["industry"],
		Region:        region,
		Weights:       req.Weights,
	}, ""
}

// recommend runs the deterministic engine for a validated request.
// It returns nil when no provider could be scored.
func recommend(in *recommendInput) *models.RecommendResponse {
	prefs := map[string]string{
		catalog.FeatureBudget:      in.Budget,
		catalog.FeatureScalability: in.Scalability,
		catalog.FeatureSecurity:    in.Security,
		catalog.FeatureEaseOfUse:   in.EaseOfUse,
		catalog.FeatureFreeTier:    in.FreeTier,
	}

	intensities := make(map[string]float64, len(prefs))
	for feature, level := range prefs {
		intensity, err := scoring.NormalizeIntensity(level)
		if err != nil {
			// Levels are validated upstream; an invalid one here is a
			// programming error, not a client error.
			logging.Error().Str("feature", feature).Err(err).Msg("Unvalidated intensity reached scoring")
			return nil
		}
		intensities[feature] = intensity
	}

	weights := scoring.SelectWeights(in.Weights)
	scores := scoring.Score(intensities, weights)
	scoring.ApplyRegionalModifiers(scores, in.Region)

	estimates := scoring.EstimateCosts(in.Scalability, in.Security, in.TeamExpertise)
	scoring.ApplyCostPenalty(scores, estimates, in.Budget)

	if len(scores) == 0 {
		return nil
	}

	winner := scoring.Best(scores)
	percent, level := scoring.Confidence(scores)
	model, reason := rules.SelectServiceModel(in.Industry, in.TeamExpertise)
	lines := explain.Generate(winner, prefs, scores, reason)

	return &models.RecommendResponse{
		RecommendedProvider:     winner,
		RecommendedServiceModel: model,
		FinalScores:             scores,
		EstimatedCosts:          estimates,
		Confidence: models.Confidence{
			ConfidencePercent: percent,
			ConfidenceLevel:   level,
		},
		Explanation:         lines,
		ExplanationRaw:      lines,
		ExplanationEnhanced: explain.Join(lines),
	}
}

// Recommend handles POST /api/v1/recommend.
//
// The request body carries seven required qualitative preferences plus
// optional region and weight overrides. The engine is deterministic;
// only the AI-enhanced explanation text can differ between identical
// requests, and enhancement failures fall back to the deterministic
// text rather than failing the request.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Content-Type must be application/json.", nil)
		return
	}

	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}

	in, msg := parseRecommendRequest(&req)
	if msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg, nil)
		return
	}

	cacheKey := cache.GenerateKey("recommend", in)
	if cached, ok := h.cache.Get(cacheKey); ok {
		if resp, ok := cached.(*models.RecommendResponse); ok {
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   resp,
				Metadata: models.Metadata{
					Timestamp: time.Now(),
					Cached:    true,
				},
			})
			return
		}
	}

	resp := recommend(in)
	if resp == nil {
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "No provider scores computed.", nil)
		return
	}

	resp.ExplanationEnhanced = h.enhance(r, resp.ExplanationRaw)

	metrics.RecordRecommendation(resp.RecommendedProvider, resp.RecommendedServiceModel,
		resp.Confidence.ConfidencePercent, resp.Confidence.ConfidenceLevel)

	h.cache.Set(cacheKey, resp)

	logging.Ctx(r.Context()).Info().
		Str("provider", resp.RecommendedProvider).
		Str("service_model", resp.RecommendedServiceModel).
		Str("confidence", resp.Confidence.ConfidenceLevel).
		Dur("duration", time.Since(start)).
		Msg("Recommendation computed")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// enhance rewrites the deterministic explanation through the configured
// enhancer. Enhancement is strictly fail-open: any error logs a warning
// and the joined deterministic text is returned instead. The warning
// never includes request bodies or credentials.
func (h *Handler) enhance(r *http.Request, lines []string) string {
	joined := explain.Join(lines)
	if h.enhancer == nil {
		metrics.RecordEnhancerOutcome("disabled")
		return joined
	}

	enhanced, err := h.enhancer.Enhance(r.Context(), joined)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Explanation enhancement failed, using deterministic text")
		metrics.RecordEnhancerOutcome("fallback")
		return joined
	}
	return enhanced
}

// RecommendUsage handles GET /api/v1/recommend with a usage hint so
// that a browser probe of the endpoint gets something actionable.
func (h *Handler) RecommendUsage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.UsageResponse{
			Message:        "Send a POST request with JSON preferences to receive a recommendation.",
			Method:         http.MethodPost,
			RequiredFields: requiredFields,
			OptionalFields: optionalFields,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
