// Package config loads, validates, and normalizes Discovery configuration.
//
// Configuration lives in a TOML file (default ~/.config/discovery/config.toml)
// and covers storage paths, the matching thresholds and scorer weights used by
// the reconciliation engine, backup retention, and logging. Load applies
// defaults first, so a missing file yields a fully usable configuration.
package config
