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


// Package index provides an in-memory BM25 lexical index over judgment
// chunks.
//
// The index is built once from a snapshot of the corpus and is immutable
// afterward, which makes concurrent ranking safe without locks. When chunks
// are added or removed, callers rebuild the index and swap the pointer.
// Statutory citations like "302" or "CrPC" are exact-matched by BM25 where
// embedding similarity tends to blur them, which is why lexical ranking
// stays in the loop alongside vector search.
package index
