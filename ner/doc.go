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


// Package ner extracts legal entities from Indian court judgment text.
//
// Recognition is purely pattern-based: statute section references
// (IPC, CrPC, Evidence Act, Constitution), case numbers, court names,
// statute names, dates, and common legal terms are matched with compiled
// regular expressions, each carrying a fixed confidence. Overlapping
// matches are resolved in favor of the higher-confidence span.
//
// Pattern matching keeps extraction deterministic and fast enough to run
// inline on every query and on every chunk during ingestion, with no model
// dependency.
package ner
