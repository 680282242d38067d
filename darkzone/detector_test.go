package darkzone

import (
	"testing"

	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/ner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detect(t *testing.T, text string) []core.DarkZone {
	t.Helper()
	entities := ner.NewRecognizer().Extract(text)
	return NewDetector(DefaultConfig()).Detect(text, entities)
}

func TestDetectUnexplainedCitation(t *testing.T) {
	text := "The accused was convicted under Section 302 IPC and sentenced to life imprisonment."

	zones := detect(t, text)

	require.Len(t, zones, 1)
	assert.Equal(t, "IPC", zones[0].Citation.Act)
	assert.Equal(t, "302", zones[0].Citation.Number)
	assert.False(t, zones[0].Resolved)
	assert.Contains(t, zones[0].Window, "convicted under Section 302 IPC")
}

func TestExplanationIndicatorSuppressesZone(t *testing.T) {
	text := "As provided in Section 302 IPC, whoever commits murder shall be punished with death or imprisonment for life."

	zones := detect(t, text)

	assert.Empty(t, zones)
}

func TestDefinitionalWordingSuppressesZone(t *testing.T) {
	text := "The court examined Section 299 IPC. Culpable homicide means causing death " +
		"by doing an act with the intention of causing death, or with the intention of causing " +
		"such bodily injury as is likely to cause death, or with the knowledge of likelihood."

	zones := detect(t, text)

	assert.Empty(t, zones)
}

func TestDistantIndicatorDoesNotSuppress(t *testing.T) {
	filler := ""
	for i := 0; i < 30; i++ {
		filler += "The witness testimony was recorded. "
	}
	// Indicator sits well beyond the proximity threshold from the citation.
	text := "According to the prosecution case, " + filler + "the accused was charged under Section 302 IPC."

	zones := detect(t, text)

	require.Len(t, zones, 1)
	assert.Equal(t, "302", zones[0].Citation.Number)
}

func TestRelatedEntitiesCollected(t *testing.T) {
	text := "In Crl.A.No. 99/2015 the Sessions Court convicted the accused under Section 302 IPC."

	zones := detect(t, text)

	require.Len(t, zones, 1)
	types := make(map[core.EntityType]bool)
	for _, e := range zones[0].Related {
		types[e.Type] = true
	}
	assert.True(t, types[core.EntityCaseNumber])
	assert.True(t, types[core.EntityCourt])
}

func TestMultipleCitationsYieldMultipleZones(t *testing.T) {
	text := "Charges were framed under Section 302 IPC. Bail under Section 439 of the Code of Criminal Procedure was refused."

	zones := detect(t, text)

	require.Len(t, zones, 2)
	assert.Equal(t, "IPC", zones[0].Citation.Act)
	assert.Equal(t, "CrPC", zones[1].Citation.Act)
}

func TestWindowClampedAtTextBounds(t *testing.T) {
	text := "Section 420 IPC applies."

	zones := detect(t, text)

	require.Len(t, zones, 1)
	assert.Equal(t, 0, zones[0].WindowStart)
	assert.Equal(t, text, zones[0].Window)
}

func TestNonSectionEntitiesIgnored(t *testing.T) {
	text := "The Supreme Court of India dismissed the appeal on 15 March 2019."

	zones := detect(t, text)

	assert.Empty(t, zones)
}

func TestConfigDefaultsApplied(t *testing.T) {
	d := NewDetector(Config{})
	assert.Equal(t, 500, d.config.WindowSize)
	assert.Equal(t, 200, d.config.Proximity)
}
