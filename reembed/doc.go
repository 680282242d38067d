// Package reembed provides functionality for reembedding stored judgment
// chunks and statute sections with a new or updated embedding model.
//
// This package supports batch processing, progress tracking, retry logic
// with exponential backoff, and vector normalization so reembedded vectors
// remain usable by dot product similarity search.
package reembed
