package ner

import "regexp"

// sectionPattern pairs a compiled regex with the act it refers to.
// The first capture group must be the section or article number.
type sectionPattern struct {
	re  *regexp.Regexp
	act string
}

var sectionPatterns = []sectionPattern{
	// IPC
	{regexp.MustCompile(`(?i)Section\s+(\d+[A-Z]?)\s+of\s+the\s+Indian\s+Penal\s+Code`), "IPC"},
	{regexp.MustCompile(`(?i)Section\s+(\d+[A-Z]?)\s+IPC`), "IPC"},
	{regexp.MustCompile(`(?i)IPC\s+Section\s+(\d+[A-Z]?)`), "IPC"},
	{regexp.MustCompile(`(?i)u/s\.?\s*(\d+[A-Z]?)\s+IPC`), "IPC"},
	{regexp.MustCompile(`(?i)under\s+Section\s+(\d+[A-Z]?)\s+IPC`), "IPC"},

	// CrPC
	{regexp.MustCompile(`(?i)Section\s+(\d+[A-Z]?)\s+of\s+the\s+Code\s+of\s+Criminal\s+Procedure`), "CrPC"},
	{regexp.MustCompile(`(?i)Section\s+(\d+[A-Z]?)\s+of\s+Cr\.?P\.?C\.?`), "CrPC"},
	{regexp.MustCompile(`(?i)Cr\.?P\.?C\.?\s+Section\s+(\d+[A-Z]?)`), "CrPC"},
	{regexp.MustCompile(`(?i)u/s\.?\s*(\d+[A-Z]?)\s+Cr\.?P\.?C\.?`), "CrPC"},

	// Evidence Act
	{regexp.MustCompile(`(?i)Section\s+(\d+[A-Z]?)\s+of\s+the\s+Evidence\s+Act`), "Evidence Act"},
	{regexp.MustCompile(`(?i)Evidence\s+Act\s+Section\s+(\d+[A-Z]?)`), "Evidence Act"},

	// Constitution
	{regexp.MustCompile(`(?i)Article\s+(\d+[A-Z]?)\s+of\s+the\s+Constitution`), "Constitution"},
	{regexp.MustCompile(`(?i)Constitution\s+Article\s+(\d+[A-Z]?)`), "Constitution"},
}

var caseNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Crl\.?\s*A\.?\s*No\.?\s*(\d+/\d+)`),
	regexp.MustCompile(`(?i)Criminal\s+Appeal\s+No\.?\s*(\d+/\d+)`),
	regexp.MustCompile(`(?i)W\.?P\.?\s*\(?C\)?\s*No\.?\s*(\d+/\d+)`),
	regexp.MustCompile(`(?i)Writ\s+Petition\s+No\.?\s*(\d+/\d+)`),
	regexp.MustCompile(`(?i)SLP\s*\(?C\)?\s*No\.?\s*(\d+/\d+)`),
	regexp.MustCompile(`(?i)Special\s+Leave\s+Petition\s+No\.?\s*(\d+/\d+)`),
	regexp.MustCompile(`(?i)Civil\s+Appeal\s+No\.?\s*(\d+/\d+)`),
	regexp.MustCompile(`(?i)Cr\.?\s*No\.?\s*(\d+/\d+)`),
}

var courtPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Supreme\s+Court\s+of\s+India`),
	regexp.MustCompile(`(?i)High\s+Court\s+of\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)District\s+Court`),
	regexp.MustCompile(`(?i)Sessions\s+Court`),
	regexp.MustCompile(`(?i)Magistrate\s+Court`),
}

var statuteNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Indian\s+Penal\s+Code`),
	regexp.MustCompile(`(?i)Code\s+of\s+Criminal\s+Procedure`),
	regexp.MustCompile(`(?i)Evidence\s+Act`),
	regexp.MustCompile(`(?i)Constitution\s+of\s+India`),
	regexp.MustCompile(`(?i)Criminal\s+Procedure\s+Code`),
}

var legalTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bAcquittal\b`),
	regexp.MustCompile(`(?i)\bConviction\b`),
	regexp.MustCompile(`(?i)\bBail\b`),
	regexp.MustCompile(`(?i)\bAppeal\b`),
	regexp.MustCompile(`(?i)\bRevision\b`),
	regexp.MustCompile(`(?i)\bPetition\b`),
	regexp.MustCompile(`(?i)\bWrit\b`),
	regexp.MustCompile(`(?i)\bHabeas\s+Corpus\b`),
	regexp.MustCompile(`(?i)\bMandamus\b`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}[./-]\d{1,2}[./-]\d{4}`),
	regexp.MustCompile(`\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}`),
}

// Confidence assigned to each entity type. Case numbers are nearly
// unambiguous, legal terms are common words and rank lowest.
const (
	confidenceCaseNumber     = 0.95
	confidenceStatuteSection = 0.9
	confidenceCourt          = 0.9
	confidenceStatuteName    = 0.85
	confidenceDate           = 0.8
	confidenceLegalTerm      = 0.7
)
