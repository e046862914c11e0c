// Package health reports whether sequences and the registry holding them are
// operating normally, judged by the share of rejected operations.
package health

import (
	"fmt"
	"time"
)

// Status values
const (
	StateHealthy   = "healthy"
	StateDegraded  = "degraded"
	StateUnhealthy = "unhealthy"
)

// Status represents the health state of a sequence or the whole registry
type Status struct {
	Component   string    `json:"component"`
	Healthy     bool      `json:"healthy"` // true if status is "healthy"
	Status      string    `json:"status"`  // "healthy", "unhealthy", "degraded"
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
	Metrics     *Metrics  `json:"metrics,omitempty"`
}

// Metrics contains the activity a status was derived from
type Metrics struct {
	Uptime      time.Duration `json:"uptime"`
	Operations  int64         `json:"operations"`
	Failures    int64         `json:"failures"`
	FailureRate float64       `json:"failure_rate"`
	Length      int           `json:"length"`
}

// Thresholds map a failure rate to a state. A zero threshold is never crossed.
type Thresholds struct {
	Degraded  float64 `json:"degraded"`
	Unhealthy float64 `json:"unhealthy"`
}

// DefaultThresholds marks a component degraded above 25% rejected
// operations and unhealthy above 75%.
func DefaultThresholds() Thresholds {
	return Thresholds{Degraded: 0.25, Unhealthy: 0.75}
}

// IsHealthy returns true if the status is healthy
func (s Status) IsHealthy() bool {
	return s.Status == StateHealthy
}

// IsDegraded returns true if the status is degraded
func (s Status) IsDegraded() bool {
	return s.Status == StateDegraded
}

// IsUnhealthy returns true if the status is unhealthy
func (s Status) IsUnhealthy() bool {
	return s.Status == StateUnhealthy
}

// WithMetrics returns a copy of the status with metrics attached
func (s Status) WithMetrics(metrics *Metrics) Status {
	s.Metrics = metrics
	return s
}

// WithSubStatus adds a sub-status and returns a copy
func (s Status) WithSubStatus(subStatus Status) Status {
	newSubStatuses := make([]Status, len(s.SubStatuses), len(s.SubStatuses)+1)
	copy(newSubStatuses, s.SubStatuses)
	s.SubStatuses = append(newSubStatuses, subStatus)
	return s
}

// FromActivity judges a component by its failure rate.
// A component without operations is healthy.
func FromActivity(component string, m Metrics, th Thresholds) Status {
	var status Status
	switch {
	case m.Operations == 0:
		status = NewHealthy(component, "No operations yet")
	case th.Unhealthy > 0 && m.FailureRate > th.Unhealthy:
		status = NewUnhealthy(component, rateMessage(m))
	case th.Degraded > 0 && m.FailureRate > th.Degraded:
		status = NewDegraded(component, rateMessage(m))
	default:
		status = NewHealthy(component, rateMessage(m))
	}
	return status.WithMetrics(&m)
}

func rateMessage(m Metrics) string {
	return fmt.Sprintf("%d of %d operations rejected (%.0f%%)",
		m.Failures, m.Operations, m.FailureRate*100)
}
