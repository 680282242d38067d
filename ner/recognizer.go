package ner

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/caselode/caselode/core"
)

// Recognizer extracts legal entities from judgment text and queries using
// pattern matching. It is stateless and safe for concurrent use.
type Recognizer struct{}

// NewRecognizer creates a pattern-based entity recognizer.
func NewRecognizer() *Recognizer {
	return &Recognizer{}
}

// Extract returns all entities found in text, with overlapping matches
// resolved and the result ordered by start offset.
func (r *Recognizer) Extract(text string) []core.Entity {
	var entities []core.Entity

	entities = append(entities, r.extractSections(text)...)
	entities = append(entities, extractSimple(text, caseNumberPatterns, core.EntityCaseNumber, confidenceCaseNumber)...)
	entities = append(entities, extractSimple(text, courtPatterns, core.EntityCourt, confidenceCourt)...)
	entities = append(entities, extractSimple(text, statuteNamePatterns, core.EntityStatuteName, confidenceStatuteName)...)
	entities = append(entities, extractSimple(text, legalTermPatterns, core.EntityLegalTerm, confidenceLegalTerm)...)
	entities = append(entities, extractSimple(text, datePatterns, core.EntityDate, confidenceDate)...)

	return resolveOverlaps(entities)
}

// ExtractSections returns only statute section references, each carrying
// the act name and section number.
func (r *Recognizer) ExtractSections(text string) []core.Entity {
	all := r.Extract(text)
	sections := make([]core.Entity, 0, len(all))
	for _, e := range all {
		if e.Type == core.EntityStatuteSection {
			sections = append(sections, e)
		}
	}
	return sections
}

func (r *Recognizer) extractSections(text string) []core.Entity {
	var entities []core.Entity
	for _, p := range sectionPatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			number := text[m[2]:m[3]]
			entities = append(entities, core.Entity{
				Type:       core.EntityStatuteSection,
				Text:       fmt.Sprintf("%s Section %s", p.act, number),
				Start:      m[0],
				End:        m[1],
				Confidence: confidenceStatuteSection,
				Act:        p.act,
				Number:     number,
			})
		}
	}
	return entities
}

func extractSimple(text string, patterns []*regexp.Regexp, typ core.EntityType, confidence float64) []core.Entity {
	var entities []core.Entity
	for _, re := range patterns {
		for _, m := range re.FindAllStringIndex(text, -1) {
			entities = append(entities, core.Entity{
				Type:       typ,
				Text:       text[m[0]:m[1]],
				Start:      m[0],
				End:        m[1],
				Confidence: confidence,
			})
		}
	}
	return entities
}

// resolveOverlaps drops entities whose spans collide with a stronger match.
// Higher confidence wins; on equal confidence the longer span wins, then
// the leftmost. The survivors are returned in start-offset order.
func resolveOverlaps(entities []core.Entity) []core.Entity {
	if len(entities) == 0 {
		return nil
	}

	ranked := make([]core.Entity, len(entities))
	copy(ranked, entities)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		if ranked[i].Len() != ranked[j].Len() {
			return ranked[i].Len() > ranked[j].Len()
		}
		return ranked[i].Start < ranked[j].Start
	})

	var kept []core.Entity
	for _, candidate := range ranked {
		collides := false
		for _, existing := range kept {
			if candidate.Overlaps(existing) {
				collides = true
				break
			}
		}
		if !collides {
			kept = append(kept, candidate)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Start < kept[j].Start
	})
	return kept
}
