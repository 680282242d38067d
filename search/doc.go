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


// Package search implements hybrid retrieval over the judgment corpus.
//
// A query flows through a fixed pipeline: legal entities are extracted from
// the query text, unexplained statute citations become dark zones, the
// query is enhanced with entity surface forms and dark zone sub-queries,
// then a BM25 lexical ranker and a vector similarity ranker score the
// corpus in parallel. Their rankings are merged with reciprocal rank
// fusion, the winning chunks are hydrated from storage, cited statute
// sections are resolved from the knowledge base, and everything is packaged
// into a bounded context bundle for summarization.
//
// The pipeline never hard-fails on sparsity. An unavailable embedding
// service degrades the query to lexical-only ranking, a chunk missing from
// the store is skipped, and an unresolvable citation becomes a note in the
// bundle instead of an error.
package search
