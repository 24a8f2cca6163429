// Package services provides domain services that work across many Order aggregates.
//
// The package includes:
//   - QueueEngine: computes the serving order and per-status views of the queue
package services
