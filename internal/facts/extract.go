// Package facts extracts structured signals from markdown and source
// files: configuration keys, model names, section headings, feature
// keywords, and environment variables. Raw term comparison is too noisy
// for freshness checks; these classes are the ones that actually drift.
package facts

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/amplifier-docs/docsync/internal/domain"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```\\w*\\n.*?```")

	tableKeyRe = regexp.MustCompile("(?i)\\|\\s*`([a-z][a-z0-9_]*)`\\s*\\|")
	defnKeyRe  = regexp.MustCompile("(?i)(?:\\*\\*|`)([a-z][a-z0-9_]*)(?:\\*\\*|`)\\s*[-:]")

	claudeModelRe = regexp.MustCompile(`(?i)claude[-_]?([a-z]+)[-_]?(\d+[-_]?\d*)`)
	gptModelRe    = regexp.MustCompile(`(?i)gpt[-_]?(\d+(?:[-_]?turbo)?(?:[-_]?preview)?)`)
	backtickRe    = regexp.MustCompile("`([a-z]+-[a-z0-9-]+)`")

	envVarRes = []*regexp.Regexp{
		regexp.MustCompile(`\$([A-Z][A-Z0-9_]+)`),
		regexp.MustCompile(`\$\{([A-Z][A-Z0-9_]+)\}`),
		regexp.MustCompile(`export\s+([A-Z][A-Z0-9_]+)`),
	}

	headingCleanRe = regexp.MustCompile(`[^\w\s]`)
)

// configKeyNoise are generic words that match the key patterns but carry
// no signal.
var configKeyNoise = map[string]bool{
	"true": true, "false": true, "null": true, "none": true,
	"type": true, "value": true, "default": true, "string": true,
	"int": true, "bool": true, "float": true, "description": true,
	"example": true, "title": true, "name": true, "config": true,
	"module": true, "source": true, "providers": true,
}

// featureKeywords are the behaviors worth tracking between source and docs.
var featureKeywords = []string{
	"streaming",
	"tool use",
	"function calling",
	"vision",
	"rate limit",
	"retry",
	"debug",
	"beta",
	"context window",
	"token",
	"error recovery",
	"validation",
	"graceful",
}

// StripCodeBlocks removes fenced code blocks so examples don't pollute
// key extraction.
func StripCodeBlocks(content string) string {
	return fencedBlockRe.ReplaceAllString(content, "")
}

// ExtractConfigKeys pulls configuration keys from table rows and
// definition lists. Keys shorter than three characters or in the noise
// list are dropped.
func ExtractConfigKeys(content string) map[string]bool {
	keys := make(map[string]bool)
	clean := StripCodeBlocks(content)

	for _, m := range tableKeyRe.FindAllStringSubmatch(clean, -1) {
		addConfigKey(keys, m[1])
	}
	for _, m := range defnKeyRe.FindAllStringSubmatch(clean, -1) {
		addConfigKey(keys, m[1])
	}
	return keys
}

func addConfigKey(keys map[string]bool, key string) {
	key = strings.ToLower(key)
	if len(key) > 2 && !configKeyNoise[key] {
		keys[key] = true
	}
}

// ExtractModels pulls model identifiers (claude, gpt, and backticked
// candidates mentioning known model families).
func ExtractModels(content string) map[string]bool {
	models := make(map[string]bool)

	for _, m := range claudeModelRe.FindAllStringSubmatch(content, -1) {
		model := "claude-" + m[1] + "-" + m[2]
		models[normalizeModel(model)] = true
	}
	for _, m := range gptModelRe.FindAllStringSubmatch(content, -1) {
		models[normalizeModel("gpt-"+m[1])] = true
	}
	for _, m := range backtickRe.FindAllStringSubmatch(content, -1) {
		candidate := strings.ToLower(m[1])
		for _, family := range []string{"claude", "gpt", "llama", "mistral"} {
			if strings.Contains(candidate, family) {
				models[candidate] = true
				break
			}
		}
	}
	return models
}

func normalizeModel(model string) string {
	return strings.ReplaceAll(strings.ToLower(model), "_", "-")
}

// ExtractSections returns normalized H2/H3 headings from markdown.
func ExtractSections(content string) map[string]bool {
	sections := make(map[string]bool)
	source := []byte(content)

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level >= 2 && h.Level <= 3 {
			heading := strings.ToLower(strings.TrimSpace(string(h.Text(source))))
			heading = headingCleanRe.ReplaceAllString(heading, "")
			heading = strings.TrimSpace(heading)
			if len(heading) > 2 {
				sections[heading] = true
			}
		}
		return ast.WalkContinue, nil
	})
	return sections
}

// ExtractFeatures flags which tracked feature keywords appear in content.
func ExtractFeatures(content string) map[string]bool {
	features := make(map[string]bool)
	lower := strings.ToLower(content)
	for _, kw := range featureKeywords {
		if strings.Contains(lower, kw) {
			features[strings.ReplaceAll(kw, " ", "_")] = true
		}
	}
	return features
}

// ExtractEnvVars collects environment variable names ($VAR, ${VAR},
// export VAR).
func ExtractEnvVars(content string) map[string]bool {
	envVars := make(map[string]bool)
	for _, re := range envVarRes {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			envVars[m[1]] = true
		}
	}
	return envVars
}

// Extract runs all extractors over the content.
func Extract(content string) domain.Facts {
	return domain.Facts{
		ConfigKeys: ExtractConfigKeys(content),
		Models:     ExtractModels(content),
		Sections:   ExtractSections(content),
		Features:   ExtractFeatures(content),
		EnvVars:    ExtractEnvVars(content),
	}
}
