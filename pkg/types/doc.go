// Package types defines the Go types shared by the collector and its outer
// surfaces (Munin plugin, Prometheus exporter). MetricsRecord is the
// canonical in-memory result of one poll, separate from any output format.
package types
