// Package config manages persistent user settings stored at
// ~/.tsuke/config.yaml, with environment variable overrides under the
// TSUKE_ prefix.
package config
