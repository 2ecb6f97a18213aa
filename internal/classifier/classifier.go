// Package classifier assigns a structural type to each block from the
// document-wide font-size distribution plus simple textual heuristics.
// Classification is corpus-relative: percentile thresholds are computed once
// per document, never per page.
package classifier

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/blocksearch/internal/document"
)

// Config holds the corpus-tuned cutoffs. The defaults were fitted against
// public-domain book scans; other corpora should override them.
type Config struct {
	MinChars            int      // Below this a block is skipped outright.
	BoilerplateMaxChars int      // Boilerplate matches at or above this length stay body text.
	MaxHeadingChars     int      // h3 candidates must be shorter than this.
	H1Percentile        float64  // Font-size percentile for h1.
	H2Percentile        float64  // Font-size percentile for h2.
	H3Percentile        float64  // Font-size percentile for h3.
	SkipPatterns        []string // Lowercase substrings marking boilerplate.
}

// DefaultConfig returns the cutoffs the pipeline ships with.
func DefaultConfig() Config {
	return Config{
		MinChars:            3,
		BoilerplateMaxChars: 600,
		MaxHeadingChars:     100,
		H1Percentile:        95,
		H2Percentile:        90,
		H3Percentile:        75,
		SkipPatterns: []string{
			"project gutenberg",
			"copyright",
			"license",
			"www.gutenberg.org",
			"ebook",
		},
	}
}

// FontStats holds the percentile thresholds of a document's font-size
// distribution. A zero-count FontStats disables heading detection and every
// block falls through to body.
type FontStats struct {
	P75, P90, P95 float64
	Count         int
}

// NewFontStats computes the thresholds from all font sizes in the document.
func NewFontStats(sizes []float64, cfg Config) FontStats {
	if len(sizes) == 0 {
		return FontStats{}
	}
	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Float64s(sorted)
	return FontStats{
		P75:   percentile(sorted, cfg.H3Percentile),
		P90:   percentile(sorted, cfg.H2Percentile),
		P95:   percentile(sorted, cfg.H1Percentile),
		Count: len(sorted),
	}
}

// Classify returns the structural type of a block. Rules are evaluated in
// strict order; the first match wins.
func Classify(b document.Block, stats FontStats, cfg Config) document.BlockType {
	text := strings.TrimSpace(b.Text)
	charCount := utf8.RuneCountInString(text)

	if charCount < cfg.MinChars {
		return document.TypeSkip
	}

	// Short boilerplate lines pollute heading detection; longer passages
	// containing the same words are legitimate body text.
	if charCount < cfg.BoilerplateMaxChars {
		lower := strings.ToLower(text)
		for _, pattern := range cfg.SkipPatterns {
			if strings.Contains(lower, pattern) {
				return document.TypeSkip
			}
		}
	}

	if stats.Count > 0 {
		switch {
		case b.FontSize >= stats.P95:
			return document.TypeH1
		case b.FontSize >= stats.P90:
			return document.TypeH2
		case b.FontSize >= stats.P75 && charCount < cfg.MaxHeadingChars:
			// Large-font short lines are headings; large-font long lines
			// are still body (e.g. a pull-quote).
			return document.TypeH3
		}
	}

	return document.TypeBody
}

// percentile computes the pct-th percentile of sorted values using linear
// interpolation between the two nearest ranks.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}
