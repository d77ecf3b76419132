// Package file loads and persists the application configuration from
// a TOML file: splitter settings, storage and embedding backends, and
// the declarative postprocessor pipeline.
package file
