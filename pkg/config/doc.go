// Package config provides configuration management for kdbg.
//
// Configuration is a single YAML document, validated against an embedded
// JSON schema before it is loaded.
package config
