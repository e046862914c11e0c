// Package metric provides Prometheus-based metrics collection and an HTTP
// server for seqstreams.
//
// A MetricsRegistry owns a private prometheus.Registry, the core registry
// metrics (Metrics) and any collectors components register through the
// MetricsRegistrar interface. Go runtime and process collectors are added
// automatically.
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        slog.Error("metrics server stopped", "error", err)
//	    }
//	}()
//	defer server.Stop()
//
//	registry.CoreMetrics().RecordOperation("append", nil, time.Since(start))
//
// # Core Metrics
//
//   - seqstreams_registry_sequences{kind,value_kind}
//   - seqstreams_registry_operations_total{operation,status}
//   - seqstreams_registry_operation_duration_seconds{operation}
//   - seqstreams_errors_total{operation,class}
//   - seqstreams_registry_events_total{event}
//
// # Component Metrics
//
// Components register their own collectors keyed by component and metric
// name. Registering the same key twice, or a collector whose descriptor
// clashes with an existing one, returns an invalid-class error from the
// errors package:
//
//	err := registry.RegisterCounter("scores", "appended_total", counter)
//	if errors.IsInvalid(err) {
//	    // already registered
//	}
//
// Unregister removes a collector so the key can be reused.
//
// # Thread Safety
//
// All MetricsRegistry methods are safe for concurrent use. Server Start and
// Stop are guarded by a mutex; Stop resets the server so it can be restarted.
package metric
