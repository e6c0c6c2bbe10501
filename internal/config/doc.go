// Package config loads, normalizes, and validates ytdlx configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the YTDLX_EXTRACTOR environment
// override. The Config type centralizes every knob the resolver, extractor
// runner, history store, and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
