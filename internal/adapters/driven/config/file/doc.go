// Package file stores chainsearch settings in ~/.chainsearch/config.toml.
//
// Keys such as "api.base_url" map to TOML tables ([api] base_url = ...),
// so the file stays readable and can be edited by hand. Every Set is
// written through to disk.
package file
