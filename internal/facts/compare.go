package facts

import (
	"sort"

	"github.com/amplifier-docs/docsync/internal/domain"
)

// Scoring weights. Config and model drift is critical; sections and
// features matter less.
const (
	weightConfig  = 3
	weightModel   = 3
	weightSection = 2
	weightFeature = 1

	staleScoreThreshold = 5
	maxReportedSections = 10
)

// Compare diffs source facts against doc facts and scores staleness.
// A page is stale on any config or model mismatch, or when the weighted
// score reaches the threshold.
func Compare(source, doc domain.Facts) domain.Comparison {
	missingConfig := diff(source.ConfigKeys, doc.ConfigKeys)
	extraConfig := diff(doc.ConfigKeys, source.ConfigKeys)
	missingModels := diff(source.Models, doc.Models)
	extraModels := diff(doc.Models, source.Models)
	missingSections := diff(source.Sections, doc.Sections)
	missingFeatures := diff(source.Features, doc.Features)

	score := weightConfig*len(missingConfig) +
		weightModel*len(missingModels) +
		weightModel*len(extraModels) + // model version drift counts both ways
		weightSection*len(missingSections) +
		weightFeature*len(missingFeatures)

	isStale := len(missingConfig) >= 1 ||
		len(missingModels) >= 1 ||
		len(extraModels) >= 1 ||
		score >= staleScoreThreshold

	reported := missingSections
	if len(reported) > maxReportedSections {
		reported = reported[:maxReportedSections]
	}

	return domain.Comparison{
		StalenessScore:    score,
		IsStale:           isStale,
		MissingConfigKeys: missingConfig,
		ExtraConfigKeys:   extraConfig,
		MissingModels:     missingModels,
		ExtraModels:       extraModels,
		MissingSections:   reported,
		MissingFeatures:   missingFeatures,
		SourceFacts:       source.Counts(),
		DocFacts:          doc.Counts(),
	}
}

// diff returns the members of a not present in b, sorted.
func diff(a, b map[string]bool) []string {
	out := []string{}
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
