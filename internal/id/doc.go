// Package id provides unique identifier generation utilities.
//
// This is the canonical source for ID generation across the idkit codebase.
// The central type is Generator, which issues short fixed-length identifiers
// drawn from a configurable alphabet and guarantees that no identifier is
// handed out twice within the lifetime of the instance. Sampling is uniform:
// random bytes that would introduce modulo bias are rejected, so every
// alphabet symbol is equally likely at every position.
//
// Two convenience formats are also provided for callers that need global
// rather than instance-scoped uniqueness:
//
//   - UUID: standard UUID v4 (random) for general-purpose unique identifiers
//   - Short: 16-character hex IDs for user-facing contexts where brevity matters
//
// All ID generation uses crypto/rand for secure randomness.
package id
