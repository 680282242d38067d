// Package mock provides test doubles for the ai package interfaces.
//
// The mocks generate deterministic embeddings from text hashes, so tests
// can exercise similarity search and retrieval pipelines without any
// external embedding service.
package mock
