// Package explorerapi implements driven.SearchBackend against the
// explorer's HTTP API (GET {base}/misc/search).
package explorerapi
