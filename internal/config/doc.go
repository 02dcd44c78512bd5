// Package config loads and validates fourtrack configuration.
//
// Configuration is TOML. Load resolves the file path (explicit flag, then
// ~/.config/fourtrack/config.toml, then ./fourtrack.toml), overlays it on
// Default, expands paths, and validates the result. A missing file is not
// an error; defaults apply.
package config
