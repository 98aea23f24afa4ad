// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

// Package explain generates human-readable explanations for provider
// and service model recommendations.
//
// The deterministic generator never recalculates scores or changes the
// selection; it only describes a decision that has already been made.
// An optional Enhancer can rewrite the text through an external LLM,
// and that path always fails open to the deterministic text.
package explain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/cloudcompass/internal/catalog"
	"github.com/tomtom215/cloudcompass/internal/scoring"
)

// criterion pairs a feature with its ranking influence.
type criterion struct {
	feature   string
	influence float64
}

// rankCriteria ranks features by weight * preference intensity, using
// the default weights so the narrative stays comparable across
// requests even when custom weights were applied to the scores.
// Iteration and the stable sort keep the order deterministic; the
// canonical feature order is the tie-break.
func rankCriteria(prefs map[string]string, topN int) []criterion {
	ranked := make([]criterion, 0, len(catalog.Features))
	weights := catalog.DefaultWeights()
	for _, feature := range catalog.Features {
		intensity := scoring.RawIntensity(prefs[feature])
		ranked = append(ranked, criterion{
			feature:   feature,
			influence: weights[feature] * intensity,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].influence > ranked[j].influence
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// formatScore renders a score the way it appears in responses; whole
// values keep a trailing .0 so "score: 5.0" reads as a number.
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Generate produces the deterministic explanation lines for a
// recommendation: the provider rationale, its key strengths, and the
// service model reason, in that order.
//
// prefs maps feature names to the qualitative preference values from
// the request; missing features count as "medium" when ranking
// priorities. modelReason is the sentence produced by the service
// model rule engine.
func Generate(winner string, prefs map[string]string, scores map[string]float64, modelReason string) []string {
	var lines []string

	if _, ok := catalog.ProfileFor(winner); !ok {
		lines = append(lines, "Provider selection could not be explained (unknown or missing provider).")
	} else {
		top := rankCriteria(prefs, 3)
		names := make([]string, 0, len(top))
		for _, c := range top {
			if c.influence > 0 {
				names = append(names, strings.ReplaceAll(c.feature, "_", " "))
			}
		}

		if len(names) > 0 {
			if score, ok := scores[winner]; ok {
				lines = append(lines, fmt.Sprintf(
					"%s was selected (score: %s) based on your priorities: %s.",
					strings.ToUpper(winner), formatScore(score), strings.Join(names, ", ")))
			} else {
				lines = append(lines, fmt.Sprintf(
					"%s was selected based on your priorities: %s.",
					strings.ToUpper(winner), strings.Join(names, ", ")))
			}
		} else {
			lines = append(lines, fmt.Sprintf("%s was selected as the recommended provider.", strings.ToUpper(winner)))
		}

		if strengths := catalog.Strengths(winner); len(strengths) > 0 {
			if len(strengths) > 3 {
				strengths = strengths[:3]
			}
			lines = append(lines, fmt.Sprintf("Key strengths: %s.", strings.Join(strengths, "; ")))
		}
	}

	if modelReason != "" {
		lines = append(lines, modelReason)
	} else {
		lines = append(lines, "Service model: default recommendation applied.")
	}

	return lines
}

// Join flattens explanation lines into a single block of text for the
// enhancer and for the explanation_enhanced fallback.
func Join(lines []string) string {
	if len(lines) == 0 {
		return "No explanation available."
	}
	return strings.Join(lines, "\n\n")
}
