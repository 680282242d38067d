package search

import (
	"regexp"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Keywords whose presence marks a sentence as legally salient
var legalKeywords = []string{
	"section", "act", "code", "judgment", "court",
	"conviction", "acquittal", "appeal", "statute",
}

// Terms worth carrying into an enhanced query even when they fall outside
// any recognized entity span
var queryTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Acquittal|Conviction|Bail|Appeal|Revision|Petition|Writ)\b`),
	regexp.MustCompile(`(?i)\b(?:Habeas\s+Corpus|Mandamus|Certiorari|Prohibition)\b`),
	regexp.MustCompile(`(?i)\b(?:Prosecution|Defense|Accused|Complainant|Respondent)\b`),
	regexp.MustCompile(`(?i)\b(?:Evidence|Witness|Testimony|Examination)\b`),
	regexp.MustCompile(`(?i)\b(?:Punishment|Sentence|Fine|Imprisonment)\b`),
}

// splitSentences breaks text on sentence-ending punctuation and drops
// empty fragments.
func splitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// countLegalKeywords returns how many legal keywords occur in the sentence.
func countLegalKeywords(sentence string) int {
	lower := strings.ToLower(sentence)
	count := 0
	for _, kw := range legalKeywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}

// harvestQueryTerms extracts up to maxTerms distinct lowercased legal terms
// from text, in order of first appearance.
func harvestQueryTerms(text string, maxTerms int) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, re := range queryTermPatterns {
		for _, m := range re.FindAllString(text, -1) {
			term := strings.ToLower(m)
			if !seen[term] {
				seen[term] = true
				terms = append(terms, term)
				if len(terms) >= maxTerms {
					return terms
				}
			}
		}
	}
	return terms
}

// dedupeWords removes repeated words case-insensitively while preserving
// first-occurrence order.
func dedupeWords(query string) string {
	words := strings.Fields(query)
	seen := make(map[string]bool, len(words))
	unique := make([]string, 0, len(words))

	for _, word := range words {
		lower := strings.ToLower(word)
		if !seen[lower] {
			seen[lower] = true
			unique = append(unique, word)
		}
	}
	return strings.Join(unique, " ")
}
