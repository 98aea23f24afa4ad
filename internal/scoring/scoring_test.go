// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/cloudcompass/internal/catalog"
)

// ===================================================================================================
// Intensity Normalization Tests
// ===================================================================================================

func TestNormalizeIntensity(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{name: "low", value: "low", want: 3.0 / 9.0},
		{name: "medium", value: "medium", want: 6.0 / 9.0},
		{name: "high", value: "high", want: 1.0},
		{name: "empty defaults to medium", value: "", want: 6.0 / 9.0},
		{name: "unknown value", value: "extreme", wantErr: true},
		{name: "case sensitive", value: "High", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeIntensity(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeIntensity(%q) expected error, got %v", tt.value, got)
				}
				if !errors.Is(err, ErrInvalidIntensity) {
					t.Errorf("error = %v, want ErrInvalidIntensity", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeIntensity(%q) unexpected error: %v", tt.value, err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("NormalizeIntensity(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRawIntensity(t *testing.T) {
	if got := RawIntensity("low"); got != 3 {
		t.Errorf("RawIntensity(low) = %v, want 3", got)
	}
	if got := RawIntensity("high"); got != 9 {
		t.Errorf("RawIntensity(high) = %v, want 9", got)
	}
	if got := RawIntensity(""); got != 6 {
		t.Errorf("RawIntensity(empty) = %v, want 6", got)
	}
	if got := RawIntensity("nonsense"); got != 6 {
		t.Errorf("RawIntensity(nonsense) = %v, want 6", got)
	}
}

// ===================================================================================================
// Weight Selection Tests
// ===================================================================================================

func TestSelectWeights(t *testing.T) {
	defaults := catalog.DefaultWeights()

	tests := []struct {
		name      string
		overrides map[string]float64
		want      map[string]float64
	}{
		{
			name:      "nil falls back to defaults",
			overrides: nil,
			want:      defaults,
		},
		{
			name: "missing key falls back",
			overrides: map[string]float64{
				catalog.FeatureBudget:      1,
				catalog.FeatureScalability: 1,
				catalog.FeatureSecurity:    1,
				catalog.FeatureEaseOfUse:   1,
			},
			want: defaults,
		},
		{
			name: "negative value falls back",
			overrides: map[string]float64{
				catalog.FeatureBudget:      -1,
				catalog.FeatureScalability: 1,
				catalog.FeatureSecurity:    1,
				catalog.FeatureEaseOfUse:   1,
				catalog.FeatureFreeTier:    1,
			},
			want: defaults,
		},
		{
			name: "zero sum falls back",
			overrides: map[string]float64{
				catalog.FeatureBudget:      0,
				catalog.FeatureScalability: 0,
				catalog.FeatureSecurity:    0,
				catalog.FeatureEaseOfUse:   0,
				catalog.FeatureFreeTier:    0,
			},
			want: defaults,
		},
		{
			name: "valid overrides are normalized",
			overrides: map[string]float64{
				catalog.FeatureBudget:      2,
				catalog.FeatureScalability: 1,
				catalog.FeatureSecurity:    1,
				catalog.FeatureEaseOfUse:   0,
				catalog.FeatureFreeTier:    0,
			},
			want: map[string]float64{
				catalog.FeatureBudget:      0.5,
				catalog.FeatureScalability: 0.25,
				catalog.FeatureSecurity:    0.25,
				catalog.FeatureEaseOfUse:   0,
				catalog.FeatureFreeTier:    0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectWeights(tt.overrides)
			for _, f := range catalog.Features {
				if math.Abs(got[f]-tt.want[f]) > 1e-12 {
					t.Errorf("weight[%s] = %v, want %v", f, got[f], tt.want[f])
				}
			}
		})
	}
}

func TestSelectWeights_ExtraKeysIgnored(t *testing.T) {
	got := SelectWeights(map[string]float64{
		catalog.FeatureBudget:      1,
		catalog.FeatureScalability: 1,
		catalog.FeatureSecurity:    1,
		catalog.FeatureEaseOfUse:   1,
		catalog.FeatureFreeTier:    1,
		"latency":                  99,
	})
	if len(got) != len(catalog.Features) {
		t.Fatalf("weights has %d keys, want %d", len(got), len(catalog.Features))
	}
	if math.Abs(got[catalog.FeatureBudget]-0.2) > 1e-12 {
		t.Errorf("budget weight = %v, want 0.2", got[catalog.FeatureBudget])
	}
}

// ===================================================================================================
// Score Computation Tests
// ===================================================================================================

func mediumIntensities() map[string]float64 {
	m := make(map[string]float64, len(catalog.Features))
	for _, f := range catalog.Features {
		m[f] = 6.0 / 9.0
	}
	return m
}

func TestScore_AllMediumDefaults(t *testing.T) {
	scores := Score(mediumIntensities(), catalog.DefaultWeights())

	// Hand-computed: (2/3) * sum(weight * feature score) per provider.
	want := map[string]float64{
		catalog.ProviderAWS:   5.0333,
		catalog.ProviderAzure: 4.5667,
		catalog.ProviderGCP:   5.3333,
	}
	for _, p := range catalog.Providers {
		if scores[p] != want[p] {
			t.Errorf("score[%s] = %v, want %v", p, scores[p], want[p])
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	a := Score(mediumIntensities(), catalog.DefaultWeights())
	b := Score(mediumIntensities(), catalog.DefaultWeights())
	for _, p := range catalog.Providers {
		if a[p] != b[p] {
			t.Errorf("score[%s] not deterministic: %v vs %v", p, a[p], b[p])
		}
	}
}

func uniformIntensities(t *testing.T, level string) map[string]float64 {
	t.Helper()
	m := make(map[string]float64, len(catalog.Features))
	for _, f := range catalog.Features {
		v, err := NormalizeIntensity(level)
		if err != nil {
			t.Fatalf("NormalizeIntensity(%q): %v", level, err)
		}
		m[f] = v
	}
	return m
}

// Raising every preference can only raise weighted sums, so each
// provider's pre-penalty score must be non-decreasing across
// low -> medium -> high.
func TestScore_MonotoneInIntensity(t *testing.T) {
	weights := catalog.DefaultWeights()
	low := Score(uniformIntensities(t, "low"), weights)
	medium := Score(uniformIntensities(t, "medium"), weights)
	high := Score(uniformIntensities(t, "high"), weights)

	for _, p := range catalog.Providers {
		if medium[p] < low[p] {
			t.Errorf("score[%s] decreased low->medium: %v -> %v", p, low[p], medium[p])
		}
		if high[p] < medium[p] {
			t.Errorf("score[%s] decreased medium->high: %v -> %v", p, medium[p], high[p])
		}
	}
}

// ===================================================================================================
// Regional Modifier Tests
// ===================================================================================================

func TestApplyRegionalModifiers(t *testing.T) {
	tests := []struct {
		name   string
		region string
		want   map[string]float64
	}{
		{
			name:   "us region boosts aws most",
			region: "us",
			want: map[string]float64{
				catalog.ProviderAWS:   5.3333,
				catalog.ProviderAzure: 4.7667,
				catalog.ProviderGCP:   5.5333,
			},
		},
		{
			name:   "unknown region is a no-op",
			region: "antarctica",
			want: map[string]float64{
				catalog.ProviderAWS:   5.0333,
				catalog.ProviderAzure: 4.5667,
				catalog.ProviderGCP:   5.3333,
			},
		},
		{
			name:   "empty region is a no-op",
			region: "",
			want: map[string]float64{
				catalog.ProviderAWS:   5.0333,
				catalog.ProviderAzure: 4.5667,
				catalog.ProviderGCP:   5.3333,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := Score(mediumIntensities(), catalog.DefaultWeights())
			ApplyRegionalModifiers(scores, tt.region)
			for _, p := range catalog.Providers {
				if scores[p] != tt.want[p] {
					t.Errorf("score[%s] = %v, want %v", p, scores[p], tt.want[p])
				}
			}
		})
	}
}

// ===================================================================================================
// Cost Estimation and Penalty Tests
// ===================================================================================================

func TestEstimateCosts(t *testing.T) {
	tests := []struct {
		name                             string
		scalability, security, expertise string
		want                             map[string]float64
	}{
		{
			name:        "all medium",
			scalability: "medium", security: "medium", expertise: "medium",
			// multiplier 1.25
			want: map[string]float64{"aws": 200, "azure": 194, "gcp": 169},
		},
		{
			name:        "high demands with low expertise",
			scalability: "high", security: "high", expertise: "low",
			// multiplier 1.60
			want: map[string]float64{"aws": 256, "azure": 248, "gcp": 216},
		},
		{
			name:        "baseline",
			scalability: "low", security: "low", expertise: "high",
			// multiplier 1.0
			want: map[string]float64{"aws": 160, "azure": 155, "gcp": 135},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCosts(tt.scalability, tt.security, tt.expertise)
			for _, p := range catalog.Providers {
				if got[p] != tt.want[p] {
					t.Errorf("cost[%s] = %v, want %v", p, got[p], tt.want[p])
				}
			}
		})
	}
}

func TestApplyCostPenalty(t *testing.T) {
	estimates := map[string]float64{"aws": 200, "azure": 194, "gcp": 169}

	t.Run("budget high applies scaled penalty", func(t *testing.T) {
		scores := map[string]float64{"aws": 5.0, "azure": 5.0, "gcp": 5.0}
		ApplyCostPenalty(scores, estimates, "high")
		// Most expensive provider pays the full 0.2.
		if scores["aws"] != 4.8 {
			t.Errorf("aws = %v, want 4.8", scores["aws"])
		}
		if scores["azure"] != 4.806 {
			t.Errorf("azure = %v, want 4.806", scores["azure"])
		}
		if scores["gcp"] != 4.831 {
			t.Errorf("gcp = %v, want 4.831", scores["gcp"])
		}
	})

	t.Run("budget medium leaves scores untouched", func(t *testing.T) {
		scores := map[string]float64{"aws": 5.0, "azure": 5.0, "gcp": 5.0}
		ApplyCostPenalty(scores, estimates, "medium")
		for p, s := range scores {
			if s != 5.0 {
				t.Errorf("score[%s] = %v, want 5.0", p, s)
			}
		}
	})

	t.Run("zero max cost skips the penalty", func(t *testing.T) {
		scores := map[string]float64{"aws": 5.0, "azure": 5.0, "gcp": 5.0}
		ApplyCostPenalty(scores, map[string]float64{}, "high")
		for p, s := range scores {
			if s != 5.0 {
				t.Errorf("score[%s] = %v, want 5.0", p, s)
			}
		}
	})
}

// ===================================================================================================
// Confidence Tests
// ===================================================================================================

func TestConfidence(t *testing.T) {
	tests := []struct {
		name        string
		scores      map[string]float64
		wantPercent float64
		wantLabel   string
	}{
		{
			name:        "clear winner",
			scores:      map[string]float64{"aws": 7.0, "azure": 5.0, "gcp": 4.0},
			wantPercent: 66.7,
			wantLabel:   "High",
		},
		{
			name:        "moderate gap",
			scores:      map[string]float64{"aws": 5.0, "azure": 4.1, "gcp": 3.0},
			wantPercent: 30.0,
			wantLabel:   "Moderate",
		},
		{
			name:        "narrow gap",
			scores:      map[string]float64{"aws": 5.3333, "azure": 5.0333, "gcp": 4.5},
			wantPercent: 10.0,
			wantLabel:   "Low",
		},
		{
			name:        "gap clamps at 100",
			scores:      map[string]float64{"aws": 10.0, "azure": 1.0, "gcp": 0.5},
			wantPercent: 100.0,
			wantLabel:   "High",
		},
		{
			name:        "single provider",
			scores:      map[string]float64{"aws": 9.0},
			wantPercent: 0,
			wantLabel:   "Low",
		},
		{
			name:        "empty scores",
			scores:      map[string]float64{},
			wantPercent: 0,
			wantLabel:   "Low",
		},
		{
			name:        "exact tie",
			scores:      map[string]float64{"aws": 5.0, "azure": 5.0, "gcp": 4.0},
			wantPercent: 0,
			wantLabel:   "Low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, label := Confidence(tt.scores)
			if percent != tt.wantPercent {
				t.Errorf("percent = %v, want %v", percent, tt.wantPercent)
			}
			if label != tt.wantLabel {
				t.Errorf("label = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}

// Confidence depends only on the sorted score values, never on which
// provider holds them.
func TestConfidence_ProviderRelabelingInvariant(t *testing.T) {
	original := map[string]float64{"aws": 5.3333, "azure": 4.5667, "gcp": 5.0333}
	relabeled := map[string]float64{"aws": 4.5667, "azure": 5.0333, "gcp": 5.3333}

	origPercent, origLabel := Confidence(original)
	relPercent, relLabel := Confidence(relabeled)

	if origPercent != relPercent {
		t.Errorf("percent changed under relabeling: %v vs %v", origPercent, relPercent)
	}
	if origLabel != relLabel {
		t.Errorf("label changed under relabeling: %q vs %q", origLabel, relLabel)
	}
}

// ===================================================================================================
// Winner Selection Tests
// ===================================================================================================

func TestBest(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]float64
		want   string
	}{
		{
			name:   "highest score wins",
			scores: map[string]float64{"aws": 4.0, "azure": 6.0, "gcp": 5.0},
			want:   "azure",
		},
		{
			name:   "tie goes to first enumerated provider",
			scores: map[string]float64{"aws": 5.0, "azure": 5.0, "gcp": 5.0},
			want:   "aws",
		},
		{
			name:   "tie between later providers",
			scores: map[string]float64{"aws": 1.0, "azure": 5.0, "gcp": 5.0},
			want:   "azure",
		},
		{
			name:   "empty scores",
			scores: map[string]float64{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Best(tt.scores); got != tt.want {
				t.Errorf("Best() = %q, want %q", got, tt.want)
			}
		})
	}
}
