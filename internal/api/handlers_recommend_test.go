// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cloudcompass/internal/config"
	"github.com/tomtom215/cloudcompass/internal/models"
)

// ===================================================================================================
// Test Helpers
// ===================================================================================================

// newTestRouter builds a full router with enhancement disabled.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	handler := NewHandler(cfg, nil)
	return NewRouter(handler, NewChiMiddleware(nil)).SetupChi()
}

// allMediumBody returns a request body with every preference at medium.
func allMediumBody() map[string]interface{} {
	return map[string]interface{}{
		"budget":         "medium",
		"scalability":    "medium",
		"security":       "medium",
		"ease_of_use":    "medium",
		"free_tier":      "medium",
		"team_expertise": "medium",
		"industry":       "general",
	}
}

// postRecommend sends a recommendation request and decodes the envelope.
func postRecommend(t *testing.T, router http.Handler, body map[string]interface{}) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	return rec, &envelope
}

// dataMap extracts the response data as a map.
func dataMap(t *testing.T, envelope *models.APIResponse) map[string]interface{} {
	t.Helper()
	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("response data is %T, want map", envelope.Data)
	}
	return data
}

// ===================================================================================================
// Recommendation Tests
// ===================================================================================================

func TestRecommend_AllMedium(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := postRecommend(t, router, allMediumBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q, want success", envelope.Status)
	}

	data := dataMap(t, envelope)
	if got := data["recommended_provider"]; got != "gcp" {
		t.Errorf("recommended_provider = %v, want gcp", got)
	}
	if got := data["recommended_service_model"]; got != "PaaS" {
		t.Errorf("recommended_service_model = %v, want PaaS", got)
	}

	scores, _ := data["final_scores"].(map[string]interface{})
	wantScores := map[string]float64{"aws": 5.0333, "azure": 4.5667, "gcp": 5.3333}
	for provider, want := range wantScores {
		if got := scores[provider]; got != want {
			t.Errorf("final_scores[%s] = %v, want %v", provider, got, want)
		}
	}

	costs, _ := data["estimated_costs"].(map[string]interface{})
	wantCosts := map[string]float64{"aws": 200, "azure": 194, "gcp": 169}
	for provider, want := range wantCosts {
		if got := costs[provider]; got != want {
			t.Errorf("estimated_costs[%s] = %v, want %v", provider, got, want)
		}
	}

	confidence, _ := data["confidence"].(map[string]interface{})
	if got := confidence["confidence_level"]; got != "Low" {
		t.Errorf("confidence_level = %v, want Low", got)
	}
	if got := confidence["confidence_percent"]; got != 10.0 {
		t.Errorf("confidence_percent = %v, want 10", got)
	}
}

func TestRecommend_ExplanationContent(t *testing.T) {
	router := newTestRouter(t)

	_, envelope := postRecommend(t, router, allMediumBody())
	data := dataMap(t, envelope)

	lines, _ := data["explanation"].([]interface{})
	if len(lines) != 3 {
		t.Fatalf("got %d explanation lines, want 3: %v", len(lines), lines)
	}
	if lines[0] != "GCP was selected (score: 5.3333) based on your priorities: budget, security, scalability." {
		t.Errorf("selection line = %q", lines[0])
	}
	if lines[2] != "Team expertise level 'medium' aligns with PaaS adoption." {
		t.Errorf("service model line = %q", lines[2])
	}

	raw, _ := data["explanation_raw"].([]interface{})
	if len(raw) != len(lines) {
		t.Errorf("explanation_raw has %d lines, explanation has %d", len(raw), len(lines))
	}

	// Enhancement disabled: enhanced text is the joined deterministic lines.
	enhanced, _ := data["explanation_enhanced"].(string)
	if enhanced == "" {
		t.Error("explanation_enhanced is empty")
	}
}

func TestRecommend_RegionalModifiers(t *testing.T) {
	router := newTestRouter(t)

	body := allMediumBody()
	body["region"] = "us"
	_, envelope := postRecommend(t, router, body)

	scores, _ := dataMap(t, envelope)["final_scores"].(map[string]interface{})
	wantScores := map[string]float64{"aws": 5.3333, "azure": 4.7667, "gcp": 5.5333}
	for provider, want := range wantScores {
		if got := scores[provider]; got != want {
			t.Errorf("final_scores[%s] = %v, want %v", provider, got, want)
		}
	}
}

func TestRecommend_UnknownRegionIgnored(t *testing.T) {
	router := newTestRouter(t)

	body := allMediumBody()
	body["region"] = "mars"
	rec, envelope := postRecommend(t, router, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Unknown region behaves exactly like no region.
	scores, _ := dataMap(t, envelope)["final_scores"].(map[string]interface{})
	if got := scores["gcp"]; got != 5.3333 {
		t.Errorf("final_scores[gcp] = %v, want 5.3333", got)
	}
}

func TestRecommend_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(body map[string]interface{})
		wantMsg string
	}{
		{
			name: "single missing field",
			mutate: func(body map[string]interface{}) {
				delete(body, "budget")
			},
			wantMsg: "Missing required fields: budget.",
		},
		{
			name: "multiple missing fields sorted",
			mutate: func(body map[string]interface{}) {
				delete(body, "industry")
				delete(body, "budget")
			},
			wantMsg: "Missing required fields: budget, industry.",
		},
		{
			name: "empty string is invalid, not missing",
			mutate: func(body map[string]interface{}) {
				body["security"] = ""
			},
			wantMsg: "Invalid value for security",
		},
		{
			name: "whitespace-only is invalid, not missing",
			mutate: func(body map[string]interface{}) {
				body["security"] = "   "
			},
			wantMsg: "Invalid value for security",
		},
		{
			name: "invalid qualitative value",
			mutate: func(body map[string]interface{}) {
				body["budget"] = "extreme"
			},
			wantMsg: "Invalid value for budget",
		},
		{
			name: "invalid industry",
			mutate: func(body map[string]interface{}) {
				body["industry"] = "retail"
			},
			wantMsg: "Invalid value for industry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)
			body := allMediumBody()
			tt.mutate(body)

			rec, envelope := postRecommend(t, router, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if envelope.Error == nil {
				t.Fatal("envelope error is nil")
			}
			if envelope.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("error code = %q, want VALIDATION_ERROR", envelope.Error.Code)
			}
			if envelope.Error.Message != tt.wantMsg {
				t.Errorf("error message = %q, want %q", envelope.Error.Message, tt.wantMsg)
			}
		})
	}
}

func TestRecommend_ValueNormalization(t *testing.T) {
	router := newTestRouter(t)

	// Mixed case and whitespace are accepted after normalization.
	body := allMediumBody()
	body["budget"] = "  HIGH  "
	body["industry"] = " FinTech "

	rec, envelope := postRecommend(t, router, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	// fintech is not in the industry rule table, so expertise decides.
	if got := dataMap(t, envelope)["recommended_service_model"]; got != "PaaS" {
		t.Errorf("recommended_service_model = %v, want PaaS", got)
	}
}

func TestRecommend_WeightOverrides(t *testing.T) {
	router := newTestRouter(t)

	// All weight on free_tier: gcp (10) beats aws (5) and azure (4)
	// by a wide margin and the budget penalty does not apply.
	body := allMediumBody()
	body["weights"] = map[string]float64{
		"budget":      0,
		"scalability": 0,
		"security":    0,
		"ease_of_use": 0,
		"free_tier":   1,
	}

	_, envelope := postRecommend(t, router, body)
	data := dataMap(t, envelope)
	if got := data["recommended_provider"]; got != "gcp" {
		t.Errorf("recommended_provider = %v, want gcp", got)
	}

	scores, _ := data["final_scores"].(map[string]interface{})
	// 1.0 * (6/9) * 10 = 6.6667
	if got := scores["gcp"]; got != 6.6667 {
		t.Errorf("final_scores[gcp] = %v, want 6.6667", got)
	}
}

func TestRecommend_PartialWeightsIgnored(t *testing.T) {
	router := newTestRouter(t)

	// An incomplete override set falls back to default weights.
	body := allMediumBody()
	body["weights"] = map[string]float64{"free_tier": 1}

	_, envelope := postRecommend(t, router, body)
	scores, _ := dataMap(t, envelope)["final_scores"].(map[string]interface{})
	if got := scores["gcp"]; got != 5.3333 {
		t.Errorf("final_scores[gcp] = %v, want 5.3333 (default weights)", got)
	}
}

func TestRecommend_BudgetPenalty(t *testing.T) {
	router := newTestRouter(t)

	body := allMediumBody()
	body["budget"] = "high"
	rec, envelope := postRecommend(t, router, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := dataMap(t, envelope)
	scores, _ := data["final_scores"].(map[string]interface{})
	costs, _ := data["estimated_costs"].(map[string]interface{})

	// The most expensive provider takes the full 0.2 penalty.
	maxCost := 0.0
	for _, c := range costs {
		if v, ok := c.(float64); ok && v > maxCost {
			maxCost = v
		}
	}
	if aws, ok := costs["aws"].(float64); !ok || aws != maxCost {
		t.Errorf("aws cost = %v, want max cost %v", costs["aws"], maxCost)
	}
	if len(scores) != 3 {
		t.Errorf("got %d scores, want 3", len(scores))
	}
}

func TestRecommend_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRecommend_MissingContentType(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error == nil || envelope.Error.Message != "Content-Type must be application/json." {
		t.Errorf("error = %+v, want Content-Type message", envelope.Error)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	router := newTestRouter(t)

	_, first := postRecommend(t, router, allMediumBody())
	_, second := postRecommend(t, router, allMediumBody())

	firstData, _ := json.Marshal(first.Data)
	secondData, _ := json.Marshal(second.Data)
	if !bytes.Equal(firstData, secondData) {
		t.Errorf("identical requests produced different payloads:\n%s\n%s", firstData, secondData)
	}

	// The second response comes from the cache.
	if !second.Metadata.Cached {
		t.Error("second identical request was not served from cache")
	}
}

func TestRecommendUsage_GET(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommend", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data := dataMap(t, &envelope)
	if got := data["method"]; got != http.MethodPost {
		t.Errorf("usage method = %v, want POST", got)
	}
	fields, _ := data["required_fields"].([]interface{})
	if len(fields) != 7 {
		t.Errorf("got %d required fields, want 7", len(fields))
	}
}
