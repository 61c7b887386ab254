package analyze

import (
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeContent lowers and collapses whitespace so that formatting
// changes don't count against DIRECT pages.
func normalizeContent(s string) string {
	s = strings.ToLower(s)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// contentMatch returns the similarity ratio between normalized source
// and doc content, 0 to 1. Used for the exact_source_match check on
// DIRECT pages: a ratio below the section's acceptance threshold means
// the page has drifted from its source.
func contentMatch(source, doc string) float64 {
	src := normalizeContent(source)
	dst := normalizeContent(doc)
	if src == "" && dst == "" {
		return 1
	}
	if src == "" || dst == "" {
		return 0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(src, dst, false)

	var common int
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			common += len(d.Text)
		}
	}
	return float64(2*common) / float64(len(src)+len(dst))
}
