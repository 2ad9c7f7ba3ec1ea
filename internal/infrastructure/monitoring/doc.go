// Package monitoring provides Prometheus metrics for the catalog service:
// per-route HTTP counters and latency histograms plus session lifecycle
// counters (created, completed, deleted) and an active-set gauge.
package monitoring
