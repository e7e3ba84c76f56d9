// Package metrics implements the in-process counter system behind the root
// package's Metrics type. Counters are lock-free atomics; a disabled instance
// turns every operation into a no-op so hot paths pay nothing when metrics
// are off.
package metrics
