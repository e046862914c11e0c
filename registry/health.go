package registry

import (
	"github.com/c360/seqstreams/health"
)

// WithHealthThresholds sets the failure rates used by Health.
// Defaults to health.DefaultThresholds().
func WithHealthThresholds(th health.Thresholds) Option {
	return func(r *Registry) {
		r.thresholds = th
	}
}

// Health reports one status per sequence, judged by its failure rate,
// aggregated into a registry-wide status. Sub-statuses are in name order.
func (r *Registry) Health() health.Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.sortedNames()
	subs := make([]health.Status, 0, len(names))
	for _, name := range names {
		e := r.entries[name]
		stats := e.store.Stats()
		subs = append(subs, health.FromActivity(name, health.Metrics{
			Uptime:      stats.Uptime(),
			Operations:  stats.Reads() + stats.Mutations() + stats.PersistentOps() + stats.Failures(),
			Failures:    stats.Failures(),
			FailureRate: stats.FailureRate(),
			Length:      e.store.Len(),
		}, r.thresholds))
	}
	return health.Aggregate("registry", subs)
}
