// Package config loads, normalizes, and validates cadence configuration.
//
// Configuration is TOML, merged over built-in defaults so the tool runs with
// zero configuration. Load resolves the file path (explicit flag, then
// ~/.config/cadence/config.toml, then ./cadence.toml), expands home-relative
// paths, and validates everything up front: scoring weights that do not sum
// to 1.0, thresholds outside [0, 1], and unknown provider tags are
// construction-time failures, never query-time surprises.
package config
