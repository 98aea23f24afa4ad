// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

// Package rules selects the recommended service model (IaaS, PaaS,
// SaaS) from the requester's industry and team expertise.
//
// Industry is the stronger signal and always wins when it matches a
// known rule; expertise is consulted only as a fallback. Inputs are
// trimmed and lowercased before matching so "  Healthcare " and
// "healthcare" behave identically.
package rules

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cloudcompass/internal/catalog"
)

// SelectServiceModel returns the service model for the given industry
// and team expertise, plus a one-sentence reason suitable for
// embedding in the recommendation explanation.
func SelectServiceModel(industry, teamExpertise string) (string, string) {
	ind := strings.ToLower(strings.TrimSpace(industry))
	exp := strings.ToLower(strings.TrimSpace(teamExpertise))

	if model, ok := catalog.IndustryModel(ind); ok {
		reason := fmt.Sprintf("Industry '%s' typically adopts %s solutions.", ind, model)
		return model, reason
	}
	if model, ok := catalog.ExpertiseModel(exp); ok {
		reason := fmt.Sprintf("Team expertise level '%s' aligns with %s adoption.", exp, model)
		return model, reason
	}
	return catalog.DefaultServiceModel, fmt.Sprintf("Defaulted to %s based on general suitability.", catalog.DefaultServiceModel)
}
