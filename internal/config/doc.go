package config

// Package config manages service settings: compiled-in defaults, an optional
// YAML settings file, and the overrides applied by the CLI entry point.
