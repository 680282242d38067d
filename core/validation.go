// Copyright 2026 Caselode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"time"
)

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - Section must be a known SectionType
//   - Decided, if set, must not be in the future
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding processor runs)
//   - Id (0 is valid from database sequences)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if err := ValidateSectionType(chunk.Section); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	if !chunk.Decided.IsZero() && !IsValidDate(chunk.Decided) {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidDate)
	}

	return nil
}

// ValidateStatuteSection validates a StatuteSection according to domain rules.
//
// Validation rules:
//   - Act must not be empty
//   - Number must not be empty
//   - Contents must not be empty
//
// NOT validated:
//   - Vector (can be empty until embedded)
//   - Title (optional)
func ValidateStatuteSection(section *StatuteSection) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", ErrInvalidStatuteSection)
	}

	if section.Act == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStatuteSection, ErrEmptyActName)
	}

	if section.Number == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStatuteSection, ErrEmptySectionNumber)
	}

	if section.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStatuteSection, ErrEmptyContent)
	}

	return nil
}

// ValidateSectionType validates that a SectionType has a known value.
func ValidateSectionType(section SectionType) error {
	if section < SectionUnknown || section > SectionConclusion {
		return fmt.Errorf("%w: value %d", ErrInvalidSectionType, section)
	}
	return nil
}

// IsValidDate checks if a judgment date is valid (not in the future).
func IsValidDate(ts time.Time) bool {
	return !ts.After(time.Now())
}
