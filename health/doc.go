// Package health turns sequence activity into a three-state health report.
//
// # Health States
//
//   - Healthy: the share of rejected operations is at or below Thresholds.Degraded
//   - Degraded: above Thresholds.Degraded
//   - Unhealthy: above Thresholds.Unhealthy
//
// Rejected operations are out-of-range accesses, invalid arguments and type
// mismatches reported by sequence statistics. A sequence that has not been
// used yet is healthy.
//
// # Usage
//
//	status := health.FromActivity("primes", health.Metrics{
//	    Operations:  8,
//	    Failures:    3,
//	    FailureRate: 0.375,
//	}, health.DefaultThresholds())
//	status.IsDegraded() // true
//
// The registry builds one status per sequence and combines them with
// Aggregate: any unhealthy sub-status makes the aggregate unhealthy, any
// degraded one makes it degraded. The metrics server serves the aggregate
// on /health and answers 503 while it is unhealthy.
package health
