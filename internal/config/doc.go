// Package config provides configuration structures and utilities for htmlmend.
// It defines the document to operate on, the strip markers, the diagnostic
// settings and report output preferences, and loads overrides from an
// optional YAML file.
package config
