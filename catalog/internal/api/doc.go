// Package api implements the HTTP read API over the current catalog snapshot.
//
// New(live, metrics) returns an http.Handler that serves:
//
//	GET /api/v1/health                — record count, resource, loaded_at
//	GET /api/v1/sets                  — every record in load order
//	GET /api/v1/tags                  — distinct tags, first-seen order
//	GET /api/v1/tags/count?tag=T      — number of sets tagged T; 400 without tag
//	GET /api/v1/themes                — set count per theme
//	GET /api/v1/themes/exists?name=X  — whether theme X exists; no name = absent theme
//	GET /api/v1/pieces/sum            — total pieces
//	GET /api/v1/pieces/partition      — non-zero piece counts split at > 100
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for non-GET methods
//   - Read one snapshot per request from store.Live
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
