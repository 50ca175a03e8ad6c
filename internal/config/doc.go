// Package config defines the format-agnostic model of a frame declaration,
// along with the Loader interface for reading it from various sources.
//
// The config.Model is the single source of truth for the app package, which
// turns it into a live frame graph. The concrete HCL implementation of the
// Loader lives in a separate package.
package config
