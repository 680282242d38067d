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


// Package storage defines the persistence interfaces for the judgment corpus
// and the statute knowledge base, along with the binary serialization helpers
// shared by backend implementations.
//
// Two repositories are defined:
//
//   - ChunkRepository: append-only judgment chunks with embeddings and a
//     vector similarity scan used by the semantic ranker.
//   - StatuteRepository: the statute knowledge base, keyed by the
//     (act, section number) tuple.
//
// The backends subdirectory contains the BadgerDB implementation; tests use
// its in-memory mode.
package storage
