package storage

import (
	"testing"
	"time"

	"github.com/caselode/caselode/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent(core.StatuteTuple("Indian Penal Code", "302"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalChunk(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		chunk *core.Chunk
	}{
		{
			name: "full chunk",
			chunk: &core.Chunk{
				Id:         7,
				JudgmentId: core.IDFromContent("Crl.A.No. 417/2018"),
				Index:      2,
				Contents:   "The appellant was convicted under Section 302 IPC.",
				Section:    core.SectionFacts,
				TokenCount: 9,
				CaseNumber: "417/2018",
				Court:      "Supreme Court of India",
				Decided:    time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC),
				Vector:     []float32{0.1, 0.2, 0.3},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "chunk without embedding",
			chunk: &core.Chunk{
				Id:       1,
				Contents: "Heard learned counsel for the parties.",
				Section:  core.SectionUnknown,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChunk(tt.chunk)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalChunk(data)
			require.NoError(t, err)
			assert.Equal(t, tt.chunk, decoded)
		})
	}
}

func TestMarshalUnmarshalStatuteSection(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	section := &core.StatuteSection{
		Id:         core.IDFromContent(core.StatuteTuple("Indian Penal Code", "302")),
		Act:        "Indian Penal Code",
		Number:     "302",
		Title:      "Punishment for murder",
		Contents:   "Whoever commits murder shall be punished with death or imprisonment for life.",
		Vector:     []float32{0.6, 0.8},
		InsertedAt: now,
		UpdatedAt:  now,
	}

	data := MarshalStatuteSection(section)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalStatuteSection(data)
	require.NoError(t, err)
	assert.Equal(t, section, decoded)
}

func TestUnmarshalChunk_Corrupt(t *testing.T) {
	_, err := UnmarshalChunk([]byte{0xff})
	assert.Error(t, err)
}
