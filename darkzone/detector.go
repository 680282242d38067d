package darkzone

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/caselode/caselode/core"
)

// explanationIndicators mark phrasing that introduces the substance of a
// cited provision. A citation accompanied by one of these near the mention
// is not a dark zone.
var explanationIndicators = []*regexp.Regexp{
	regexp.MustCompile(`as\s+provided\s+in`),
	regexp.MustCompile(`according\s+to`),
	regexp.MustCompile(`under\s+the\s+provisions\s+of`),
	regexp.MustCompile(`as\s+per`),
	regexp.MustCompile(`in\s+accordance\s+with`),
	regexp.MustCompile(`which\s+states`),
	regexp.MustCompile(`which\s+provides`),
	regexp.MustCompile(`which\s+reads`),
	regexp.MustCompile(`section.*provides`),
	regexp.MustCompile(`section.*states`),
	regexp.MustCompile(`as\s+defined\s+in`),
}

// definitionalWords signal that the text following a citation spells out
// what the provision says.
var definitionalWords = []string{"means", "refers", "includes", "defines"}

// Config controls how much surrounding text is examined per citation.
type Config struct {
	// WindowSize is the number of characters captured on each side of a
	// citation when building its context window.
	WindowSize int

	// Proximity is the maximum distance in characters between a citation
	// and an explanation indicator for the indicator to count.
	Proximity int
}

// DefaultConfig returns the detector defaults.
func DefaultConfig() Config {
	return Config{
		WindowSize: 500,
		Proximity:  200,
	}
}

// Detector finds dark zones: statute citations a judgment relies on without
// explaining what the provision says. Each dark zone carries its context
// window so downstream retrieval can target the missing statutory text.
type Detector struct {
	config Config
	logger *slog.Logger
}

// NewDetector creates a detector with the given configuration.
// Zero or negative config fields fall back to the defaults.
func NewDetector(config Config) *Detector {
	defaults := DefaultConfig()
	if config.WindowSize <= 0 {
		config.WindowSize = defaults.WindowSize
	}
	if config.Proximity <= 0 {
		config.Proximity = defaults.Proximity
	}
	return &Detector{
		config: config,
		logger: slog.Default().With("component", "darkzone-detector"),
	}
}

// Detect examines every statute section citation among entities and returns
// a dark zone for each one the surrounding text leaves unexplained.
// The entities must have been extracted from text, with offsets intact.
func (d *Detector) Detect(text string, entities []core.Entity) []core.DarkZone {
	var zones []core.DarkZone

	for _, entity := range entities {
		if entity.Type != core.EntityStatuteSection {
			continue
		}

		window, windowStart := d.contextWindow(text, entity)
		if d.isExplained(window, windowStart, entity) {
			continue
		}

		zones = append(zones, core.DarkZone{
			Citation:    entity,
			Window:      window,
			WindowStart: windowStart,
			Related:     d.relatedEntities(entities, entity),
		})
	}

	d.logger.Debug("dark zone detection complete",
		"entities", len(entities), "zones", len(zones))
	return zones
}

// contextWindow returns the text surrounding the citation and the offset of
// the window within the full text.
func (d *Detector) contextWindow(text string, entity core.Entity) (string, int) {
	start := max(0, entity.Start-d.config.WindowSize)
	end := min(len(text), entity.End+d.config.WindowSize)
	return text[start:end], start
}

// isExplained reports whether the window contains an explanation for the
// cited provision. Two signals count: an explanation indicator within
// Proximity characters of the citation, or definitional wording shortly
// after it.
func (d *Detector) isExplained(window string, windowStart int, entity core.Entity) bool {
	lower := strings.ToLower(window)
	citationStart := entity.Start - windowStart
	citationEnd := entity.End - windowStart

	for _, indicator := range explanationIndicators {
		for _, m := range indicator.FindAllStringIndex(lower, -1) {
			distance := m[0] - citationStart
			if distance < 0 {
				distance = -distance
			}
			if distance < d.config.Proximity {
				return true
			}
		}
	}

	after := window[citationEnd:]
	if len(strings.TrimSpace(after)) > 100 {
		head := strings.ToLower(after)
		if len(head) > d.config.Proximity {
			head = head[:d.config.Proximity]
		}
		for _, word := range definitionalWords {
			if strings.Contains(head, word) {
				return true
			}
		}
	}

	return false
}

// relatedEntities collects the other entities falling inside the citation's
// context window.
func (d *Detector) relatedEntities(entities []core.Entity, citation core.Entity) []core.Entity {
	windowStart := citation.Start - d.config.WindowSize
	windowEnd := citation.End + d.config.WindowSize

	var related []core.Entity
	for _, entity := range entities {
		if entity == citation {
			continue
		}
		if entity.Start >= windowStart && entity.Start < windowEnd {
			related = append(related, entity)
		}
	}
	return related
}
