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


// Package ingestion turns raw judgment text and statute sections into
// stored, embedded retrieval units.
//
// Judgments are split into overlapping sentence-aligned chunks, tagged with
// the judgment section they came from (facts, analysis, conclusion, and so
// on), and written to storage immediately. Case metadata missing from the
// caller's input is recovered from the text by entity recognition.
// Embedding generation is the slow step, so it runs asynchronously on a
// worker pool; chunks are searchable lexically at once and semantically
// once their embeddings land.
package ingestion
