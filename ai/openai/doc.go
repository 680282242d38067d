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


// Package openai implements the ai.Embedder interface using
// OpenAI-compatible embedding APIs.
//
// The implementation works with any service exposing the OpenAI embeddings
// endpoint, including Ollama, LocalAI, vLLM, and OpenAI itself. Local
// services that do not require authentication are supported by passing a
// placeholder token.
package openai
