package domain

// Facts are the structured signals extracted from a body of markdown or source.
type Facts struct {
	ConfigKeys map[string]bool
	Models     map[string]bool
	Sections   map[string]bool
	Features   map[string]bool
	EnvVars    map[string]bool
}

// FactCounts summarizes a fact set for reporting.
type FactCounts struct {
	ConfigKeys int `json:"config_keys"`
	Models     int `json:"models"`
	Sections   int `json:"sections"`
	Features   int `json:"features"`
}

// Counts returns the per-class cardinality of the fact set.
func (f Facts) Counts() FactCounts {
	return FactCounts{
		ConfigKeys: len(f.ConfigKeys),
		Models:     len(f.Models),
		Sections:   len(f.Sections),
		Features:   len(f.Features),
	}
}

// Comparison is the result of diffing source facts against doc facts.
type Comparison struct {
	StalenessScore    int        `json:"staleness_score"`
	IsStale           bool       `json:"is_stale"`
	MissingConfigKeys []string   `json:"missing_config_keys"`
	ExtraConfigKeys   []string   `json:"extra_config_keys"`
	MissingModels     []string   `json:"missing_models"`
	ExtraModels       []string   `json:"extra_models"`
	MissingSections   []string   `json:"missing_sections"`
	MissingFeatures   []string   `json:"missing_features"`
	ContentMatch      float64    `json:"content_match,omitempty"`
	SourceFacts       FactCounts `json:"source_facts"`
	DocFacts          FactCounts `json:"doc_facts"`
}

// DocResult is the analysis outcome for a single documentation page.
type DocResult struct {
	SectionID        string           `json:"section_id"`
	DocPath          string           `json:"doc_path"`
	Relationship     RelationshipType `json:"relationship"`
	Priority         Priority         `json:"priority"`
	SourcesFound     int              `json:"sources_found"`
	SourcesMissing   []string         `json:"sources_missing"`
	Comparison       Comparison       `json:"comparison"`
	IsStale          bool             `json:"is_stale"`
	StalenessReasons []string         `json:"staleness_reasons"`
}

// MissingDoc records a mapped page that does not exist on disk.
type MissingDoc struct {
	SectionID string   `json:"section_id"`
	DocPath   string   `json:"doc_path"`
	Priority  Priority `json:"priority"`
}

// AnalysisSummary aggregates an analysis run.
type AnalysisSummary struct {
	TotalSections int `json:"total_sections"`
	Analyzed      int `json:"analyzed"`
	Stale         int `json:"stale"`
	Healthy       int `json:"healthy"`
	MissingDoc    int `json:"missing_doc"`
	MissingSource int `json:"missing_source"`
}

// HealthPct returns the healthy share of analyzed pages, in percent.
func (s AnalysisSummary) HealthPct() float64 {
	if s.Analyzed == 0 {
		return 0
	}
	return float64(s.Healthy) / float64(s.Analyzed) * 100
}

// HealthStatus buckets the health percentage.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "HEALTHY"
	HealthWarning  HealthStatus = "WARNING"
	HealthCritical HealthStatus = "CRITICAL"
)

// Status returns the health bucket for the run.
func (s AnalysisSummary) Status() HealthStatus {
	pct := s.HealthPct()
	switch {
	case pct >= 90:
		return HealthHealthy
	case pct >= 70:
		return HealthWarning
	default:
		return HealthCritical
	}
}

// AnalysisResult is the complete outcome of a freshness run.
type AnalysisResult struct {
	Summary     AnalysisSummary `json:"summary"`
	StaleDocs   []DocResult     `json:"stale_docs"`
	HealthyDocs []DocResult     `json:"healthy_docs"`
	MissingDocs []MissingDoc    `json:"missing_docs"`
}
