package outline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/amplifier-docs/docsync/internal/domain"
)

const sampleCSV = `Documentation Page,Source Files,Relationship Type,Notes
docs/architecture/kernel.md,amplifier-core/README.md|amplifier-core/amplifier_core/kernel.py,DERIVED,Core kernel page
docs/modules/providers/anthropic.md,amplifier-module-provider-anthropic/README.md,REFERENCE,
docs/getting_started/index.md,amplifier/docs/QUICKSTART.md,DIRECT,
docs/community/index.md,N/A,N/A,Manually maintained
`

func TestParseMapping(t *testing.T) {
	rows, err := ParseMapping(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseMapping failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0].DocPath != "docs/architecture/kernel.md" {
		t.Errorf("DocPath = %q", rows[0].DocPath)
	}
	if rows[0].Relationship != "DERIVED" {
		t.Errorf("Relationship = %q", rows[0].Relationship)
	}
}

func TestParseMappingMissingColumn(t *testing.T) {
	_, err := ParseMapping(strings.NewReader("Documentation Page,Notes\na,b\n"))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestSectionID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"docs/architecture/kernel.md", "architecture-kernel"},
		{"docs/modules/providers/anthropic.md", "modules-providers-anthropic"},
		{"docs/getting_started/index.md", "getting_started"},
		{"docs/index.md", "index"},
	}
	for _, tt := range tests {
		if got := SectionID(tt.path); got != tt.want {
			t.Errorf("SectionID(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"docs/architecture/kernel.md", "Kernel"},
		{"docs/getting_started/index.md", "Getting Started"},
		{"docs/user_guide/mount-plans.md", "Mount Plans"},
	}
	for _, tt := range tests {
		if got := Title(tt.path); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseSources(t *testing.T) {
	refs := ParseSources("amplifier-core/README.md|amplifier-core/amplifier_core/*.py|broken")
	if len(refs) != 2 {
		t.Fatalf("refs = %d, want 2 (malformed entry skipped)", len(refs))
	}
	if refs[0].Type != domain.SourceReadme {
		t.Errorf("refs[0].Type = %q, want readme", refs[0].Type)
	}
	if refs[1].Type != domain.SourcePython {
		t.Errorf("refs[1].Type = %q, want python", refs[1].Type)
	}
	if refs[1].Path != "amplifier_core/*.py" {
		t.Errorf("refs[1].Path = %q", refs[1].Path)
	}

	if got := ParseSources("N/A"); got != nil {
		t.Errorf("N/A sources = %v, want nil", got)
	}
}

func TestBuild(t *testing.T) {
	rows, err := ParseMapping(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	o := Build(rows, time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC))

	if o.Summary.TotalSections != 4 {
		t.Errorf("TotalSections = %d, want 4", o.Summary.TotalSections)
	}
	if o.Summary.ByRelationshipType["DERIVED"] != 1 {
		t.Errorf("DERIVED count = %d", o.Summary.ByRelationshipType["DERIVED"])
	}
	// architecture DERIVED -> high, getting_started DIRECT -> high,
	// modules REFERENCE -> medium, community N/A -> low
	if o.Summary.ByPriority["high"] != 2 {
		t.Errorf("high count = %d, want 2: %v", o.Summary.ByPriority["high"], o.Summary.ByPriority)
	}
	if o.Summary.ByPriority["medium"] != 1 || o.Summary.ByPriority["low"] != 1 {
		t.Errorf("priority counts = %v", o.Summary.ByPriority)
	}

	kernel := o.Sections[0]
	if kernel.Validation.AcceptanceThreshold != 0.90 {
		t.Errorf("DERIVED threshold = %v, want 0.90", kernel.Validation.AcceptanceThreshold)
	}
	if kernel.Generation.PromptTemplate == nil || *kernel.Generation.PromptTemplate != "synthesize_architecture" {
		t.Errorf("PromptTemplate = %v", kernel.Generation.PromptTemplate)
	}
	if !kernel.Metadata.AutoUpdate {
		t.Error("DERIVED section should auto-update")
	}

	direct := o.Sections[2]
	if direct.Validation.AcceptanceThreshold != 0.95 {
		t.Errorf("DIRECT threshold = %v, want 0.95", direct.Validation.AcceptanceThreshold)
	}

	na := o.Sections[3]
	if na.Syncable() {
		t.Error("N/A section should not be syncable")
	}
	if na.Metadata.AutoUpdate {
		t.Error("N/A section should not auto-update")
	}
	if len(na.Generation.PreserveSections) != 1 || na.Generation.PreserveSections[0] != "*" {
		t.Errorf("N/A preserve = %v", na.Generation.PreserveSections)
	}
}

func TestDefaultMetaRepoAllowed(t *testing.T) {
	meta := DefaultMeta(time.Now())
	if !meta.RepoAllowed("amplifier-core") {
		t.Error("amplifier-core should be allowed")
	}
	if meta.RepoAllowed("random-repo") {
		t.Error("random-repo should not be allowed")
	}
	if len(meta.Categories) != 12 {
		t.Errorf("categories = %d, want 12", len(meta.Categories))
	}
}

func TestOutlineEmitsNullFields(t *testing.T) {
	rows, err := ParseMapping(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseMapping failed: %v", err)
	}
	o := Build(rows, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal outline: %v", err)
	}
	// Unset bookkeeping fields serialize as explicit nulls, not
	// omitted keys.
	if !strings.Contains(string(data), `"last_synced":null`) {
		t.Error("last_synced should serialize as null")
	}
	if !strings.Contains(string(data), `"prompt_template":null`) {
		t.Error("prompt_template should serialize as null for N/A sections")
	}

	community := o.Sections[3]
	if community.Relationship != domain.RelNone {
		t.Fatalf("section 3 = %v", community.Relationship)
	}
	if community.Generation.PromptTemplate != nil {
		t.Errorf("N/A PromptTemplate = %v", *community.Generation.PromptTemplate)
	}
}
