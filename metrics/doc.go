// Package metrics exposes Prometheus metrics for parameter loading and the
// HTTP view of the loaded tree.
//
// All metrics live on the registry given to NewCollector, never on the
// global Prometheus registry, so several collectors can coexist in tests.
// A nil *Collector is valid and records nothing.
package metrics
