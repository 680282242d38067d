package search

import (
	"sort"
	"strings"

	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/ner"
)

const (
	// longTextThreshold is the length in characters beyond which base text
	// is distilled into key sentences instead of being used verbatim.
	longTextThreshold = 500

	// keySentenceCount is how many salient sentences survive distillation.
	keySentenceCount = 5

	// zoneSnippetLength is how much of a dark zone's context window is
	// appended to its synthetic sub-query.
	zoneSnippetLength = 150

	// maxQueryTerms caps the legal terms harvested from base text.
	maxQueryTerms = 10

	// highConfidenceFloor filters which entities contribute their surface
	// form to the enhanced query.
	highConfidenceFloor = 0.8
)

// Enhancer expands a raw query with entity surface forms, dark zone
// sub-queries, and legal terminology before ranking. Emphasis added this
// way improves recall without changing fusion semantics.
type Enhancer struct {
	recognizer *ner.Recognizer
}

// NewEnhancer creates a query enhancer backed by the given recognizer.
func NewEnhancer(recognizer *ner.Recognizer) *Enhancer {
	return &Enhancer{recognizer: recognizer}
}

// Enhance builds the enhanced query for baseText. Entities and dark zones
// must have been extracted from baseText; both may be empty, in which case
// the result is essentially the trimmed base text plus harvested terms.
func (e *Enhancer) Enhance(baseText string, entities []core.Entity, zones []core.DarkZone) string {
	var parts []string

	if len(baseText) > longTextThreshold {
		parts = append(parts, e.keySentences(baseText, keySentenceCount)...)
	} else {
		parts = append(parts, strings.TrimSpace(baseText))
	}

	for _, entity := range entities {
		if entity.Confidence < highConfidenceFloor {
			continue
		}
		switch entity.Type {
		case core.EntityStatuteSection, core.EntityCaseNumber, core.EntityStatuteName:
			parts = append(parts, entity.Text)
		}
	}

	for _, zone := range zones {
		parts = append(parts, zone.Citation.Text)
		if zone.Window != "" {
			snippet := zone.Window
			if len(snippet) > zoneSnippetLength {
				snippet = snippet[:zoneSnippetLength]
			}
			parts = append(parts, strings.TrimSpace(snippet))
		}
	}

	parts = append(parts, harvestQueryTerms(baseText, maxQueryTerms)...)

	return dedupeWords(strings.Join(parts, " "))
}

// keySentences scores every sentence of text and returns the best limit of
// them. Legal keywords, medium sentence length, and entity mentions all
// raise a sentence's score.
func (e *Enhancer) keySentences(text string, limit int) []string {
	sentences := splitSentences(text)

	type scored struct {
		sentence string
		score    float64
	}
	ranked := make([]scored, 0, len(sentences))

	for _, sentence := range sentences {
		score := float64(countLegalKeywords(sentence))

		words := len(strings.Fields(sentence))
		if words >= 10 && words <= 30 {
			score++
		}

		score += 0.5 * float64(len(e.recognizer.Extract(sentence)))

		ranked = append(ranked, scored{sentence: sentence, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	result := make([]string, len(ranked))
	for i, s := range ranked {
		result[i] = s.sentence
	}
	return result
}
