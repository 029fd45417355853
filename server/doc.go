// Package server exposes the search service over HTTP.
//
// Endpoints:
//
//	POST /search  {"query": "...", "temporalFilter": "30"}
//	GET  /healthz
//
// Empty queries and unparseable temporal filters map to 400 responses; all
// other search failures map to 500. Each request runs under a configurable
// deadline.
package server
