// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package catalog

// Service model identifiers.
const (
	ModelIaaS = "IaaS"
	ModelPaaS = "PaaS"
	ModelSaaS = "SaaS"
)

// DefaultServiceModel is the last-resort model when no rule matches.
const DefaultServiceModel = ModelIaaS

// industryModels maps a normalized industry to its preferred model.
// "default" is a real key and only reachable as explicit input.
var industryModels = map[string]string{
	"healthcare": ModelPaaS,
	"finance":    ModelIaaS,
	"startup":    ModelPaaS,
	"enterprise": ModelIaaS,
	"default":    ModelIaaS,
}

// expertiseModels maps a normalized team expertise level to the model
// that level can realistically operate.
var expertiseModels = map[string]string{
	"high":    ModelIaaS,
	"medium":  ModelPaaS,
	"low":     ModelSaaS,
	"default": ModelPaaS,
}

// IndustryModel looks up the service model for an industry.
func IndustryModel(industry string) (string, bool) {
	m, ok := industryModels[industry]
	return m, ok
}

// ExpertiseModel looks up the service model for an expertise level.
func ExpertiseModel(expertise string) (string, bool) {
	m, ok := expertiseModels[expertise]
	return m, ok
}
