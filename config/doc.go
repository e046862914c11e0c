// Package config provides configuration management for seqstreams.
//
// Configuration is built in layers: Defaults, then each file added to a
// Loader in order, then environment overrides. Files may be JSON (.json) or
// YAML (.yaml, .yml); maps are deep-merged so a layer only needs the keys it
// changes.
//
// # Basic Usage
//
//	loader := config.NewLoader()
//	loader.AddLayer("configs/base.yaml")
//	loader.AddLayer("configs/local.json") // Overrides base
//	loader.EnableValidation(true)
//
//	cfg, err := loader.Load()
//	if err != nil {
//		return err
//	}
//
// # Sections
//
//	version: "1.0.0"
//	log:
//	  level: info      # debug, info, warn, error
//	  format: text     # json, text
//	metrics:
//	  enabled: true
//	  port: 9090
//	  path: /metrics
//	sequences:
//	  primes:
//	    kind: array    # array, list
//	    value_type: int
//	    items: [2, 3, 5, 7]
//
// Each entry under sequences is created in the registry at startup.
//
// # Environment Overrides
//
// SEQSTREAMS_LOG_LEVEL, SEQSTREAMS_LOG_FORMAT, SEQSTREAMS_METRICS_ENABLED,
// SEQSTREAMS_METRICS_PORT and SEQSTREAMS_METRICS_PATH replace the matching
// fields after all files are merged. SetEnvPrefix changes the prefix.
//
// # Validation
//
// Validate normalizes log settings and checks every section. Failures wrap
// errors.ErrInvalidConfig from the seqstreams errors package, which
// errors.IsFatal reports as fatal.
//
// # Thread Safety
//
// Config is a plain value. SafeConfig wraps one behind an RWMutex and hands
// out deep copies from Get; Update validates before swapping.
//
// Config files are read with path, size and nesting limits; SaveToFile writes
// with 0600 permissions.
package config
