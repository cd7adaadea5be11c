// Package config provides the layered application configuration for sggit:
// embedded defaults, the user config file, a per-repository overlay and
// SGGIT_* environment variables, merged with koanf.
package config
