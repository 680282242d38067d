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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidStatuteSection indicates a StatuteSection failed validation.
	ErrInvalidStatuteSection = errors.New("invalid statute section")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidSectionType indicates an unknown SectionType value.
	ErrInvalidSectionType = errors.New("invalid section type")

	// ErrInvalidDate indicates a judgment date in the future.
	ErrInvalidDate = errors.New("judgment date cannot be in the future")

	// ErrEmptyActName indicates the statute Act field is empty.
	ErrEmptyActName = errors.New("act name cannot be empty")

	// ErrEmptySectionNumber indicates the statute Number field is empty.
	ErrEmptySectionNumber = errors.New("section number cannot be empty")
)
