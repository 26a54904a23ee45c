// Package config loads and watches the fritzstats configuration.
//
// Top-level types:
//   - Config{Device, Serve, Logging}: full tree parsed from YAML
//   - Device: host, username, password_env, auth (auto|legacy|modern),
//     format (auto|script|xml), page, timeout, dump_page
//   - Serve: listen address of the Prometheus exporter
//   - Logging: level and format of the stderr logger
//
// Load(path) reads the YAML file, applies defaults (auto variants, 5s
// timeout, :9133, info/json), then validates with struct tags. FromEnv builds
// the same tree from the Munin plugin environment.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config.
package config
