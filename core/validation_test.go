package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestValidateChunk(t *testing.T) {
	validTime := time.Now().Add(-24 * time.Hour)
	futureTime := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name: "valid chunk",
			chunk: &Chunk{
				Id:       1,
				Contents: "The appeal is dismissed.",
				Section:  SectionConclusion,
				Decided:  validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with empty vector",
			chunk: &Chunk{
				Id:       1,
				Contents: "The prosecution examined twelve witnesses.",
				Section:  SectionFacts,
				Vector:   nil,
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with ID 0",
			chunk: &Chunk{
				Id:       0,
				Contents: "Heard learned counsel for the parties.",
				Section:  SectionUnknown,
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with zero decided date",
			chunk: &Chunk{
				Contents: "The question of law is framed as follows.",
				Section:  SectionIssue,
			},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name: "empty contents",
			chunk: &Chunk{
				Id:      1,
				Section: SectionFacts,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "unknown section type",
			chunk: &Chunk{
				Contents: "some text",
				Section:  SectionType(42),
			},
			wantErr: ErrInvalidSectionType,
		},
		{
			name: "future decided date",
			chunk: &Chunk{
				Contents: "some text",
				Section:  SectionFacts,
				Decided:  futureTime,
			},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidChunk) {
				t.Errorf("ValidateChunk() error %v does not wrap ErrInvalidChunk", err)
			}
		})
	}
}

func TestValidateStatuteSection(t *testing.T) {
	tests := []struct {
		name    string
		section *StatuteSection
		wantErr error
	}{
		{
			name: "valid section",
			section: &StatuteSection{
				Act:      "Indian Penal Code",
				Number:   "302",
				Title:    "Punishment for murder",
				Contents: "Whoever commits murder shall be punished with death or imprisonment for life.",
			},
			wantErr: nil,
		},
		{
			name: "valid section without title",
			section: &StatuteSection{
				Act:      "Indian Penal Code",
				Number:   "304",
				Contents: "Punishment for culpable homicide not amounting to murder.",
			},
			wantErr: nil,
		},
		{
			name:    "nil section",
			section: nil,
			wantErr: ErrInvalidStatuteSection,
		},
		{
			name: "empty act",
			section: &StatuteSection{
				Number:   "302",
				Contents: "some text",
			},
			wantErr: ErrEmptyActName,
		},
		{
			name: "empty number",
			section: &StatuteSection{
				Act:      "Indian Penal Code",
				Contents: "some text",
			},
			wantErr: ErrEmptySectionNumber,
		},
		{
			name: "empty contents",
			section: &StatuteSection{
				Act:    "Indian Penal Code",
				Number: "302",
			},
			wantErr: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatuteSection(tt.section)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateStatuteSection() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateStatuteSection() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSectionType(t *testing.T) {
	for s := SectionUnknown; s <= SectionConclusion; s++ {
		if err := ValidateSectionType(s); err != nil {
			t.Errorf("ValidateSectionType(%v) unexpected error: %v", s, err)
		}
	}

	if err := ValidateSectionType(SectionType(-1)); !errors.Is(err, ErrInvalidSectionType) {
		t.Errorf("ValidateSectionType(-1) error = %v", err)
	}
	if err := ValidateSectionType(SectionConclusion + 1); !errors.Is(err, ErrInvalidSectionType) {
		t.Errorf("ValidateSectionType(out of range) error = %v", err)
	}
}

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want []float32
	}{
		{
			name: "unit normalization",
			in:   []float32{3, 4},
			want: []float32{0.6, 0.8},
		},
		{
			name: "already normalized",
			in:   []float32{1, 0, 0},
			want: []float32{1, 0, 0},
		},
		{
			name: "zero vector stays zero",
			in:   []float32{0, 0, 0},
			want: []float32{0, 0, 0},
		},
		{
			name: "empty vector",
			in:   nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVector(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeVector() length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("NormalizeVector()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeVector_Magnitude(t *testing.T) {
	got := NormalizeVector([]float32{0.2, -1.7, 3.4, 0.001})

	var magnitude float64
	for _, v := range got {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if math.Abs(magnitude-1.0) > 1e-6 {
		t.Errorf("normalized magnitude = %v, want 1.0", magnitude)
	}
}
