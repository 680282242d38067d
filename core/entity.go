package core

// EntityType categorizes a recognized legal entity.
type EntityType int

const (
	// EntityStatuteSection is a citation of a specific act section,
	// e.g. "Section 302 IPC".
	EntityStatuteSection EntityType = iota + 1
	// EntityStatuteName is a bare act name, e.g. "Indian Penal Code".
	EntityStatuteName
	// EntityCaseNumber is a case or appeal number.
	EntityCaseNumber
	// EntityCourt is a court name.
	EntityCourt
	// EntityDate is a calendar date.
	EntityDate
	// EntityLegalTerm is generic legal terminology (bail, acquittal, ...).
	EntityLegalTerm
)

// String returns the lower-case tag for the entity type.
func (t EntityType) String() string {
	switch t {
	case EntityStatuteSection:
		return "statute-section"
	case EntityStatuteName:
		return "statute-name"
	case EntityCaseNumber:
		return "case-number"
	case EntityCourt:
		return "court"
	case EntityDate:
		return "date"
	case EntityLegalTerm:
		return "legal-term"
	default:
		return "unknown"
	}
}

// Entity is a typed span recognized in a text window.
// Entities are ephemeral: created per query or document, never persisted.
// Start and End are byte offsets into the source text, End exclusive.
type Entity struct {
	Type       EntityType
	Text       string
	Start      int
	End        int
	Confidence float64

	// Act and Number are populated for statute-section entities and
	// identify the statute knowledge base entry to resolve against.
	Act    string
	Number string
}

// Overlaps reports whether two spans share at least one byte.
func (e Entity) Overlaps(other Entity) bool {
	return e.Start < other.End && other.Start < e.End
}

// Len returns the span length in bytes.
func (e Entity) Len() int {
	return e.End - e.Start
}

// DarkZone is a statute citation that lacks explanatory context nearby.
// Dark zones are created per request by the detector, consumed by the query
// enhancer and context assembler, and never persisted.
type DarkZone struct {
	Citation    Entity
	Window      string // bounded context window around the citation
	WindowStart int    // offset of Window within the source text
	Related     []Entity
	Resolved    bool // set once the statute text has been looked up
}
