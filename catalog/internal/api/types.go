package api

import "github.com/brickset/brickset/pkg/types"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Records  int    `json:"records"`
	Resource string `json:"resource"`
	LoadedAt string `json:"loaded_at"` // RFC3339
}

// SetsResponse is the payload for GET /api/v1/sets.
type SetsResponse struct {
	Count int             `json:"count"`
	Sets  []types.LegoSet `json:"sets"`
}

// TagsResponse is the payload for GET /api/v1/tags.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// TagCountResponse is the payload for GET /api/v1/tags/count.
type TagCountResponse struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ThemeExistsResponse is the payload for GET /api/v1/themes/exists.
// Name is null when the absent theme was queried.
type ThemeExistsResponse struct {
	Name   types.Optional[string] `json:"name"`
	Exists bool                   `json:"exists"`
}

// ThemesResponse is the payload for GET /api/v1/themes.
type ThemesResponse struct {
	Themes map[string]int `json:"themes"`
}

// SumResponse is the payload for GET /api/v1/pieces/sum.
type SumResponse struct {
	Sum int `json:"sum"`
}

// PartitionResponse is the payload for GET /api/v1/pieces/partition.
type PartitionResponse struct {
	Above  []int `json:"true"`
	AtMost []int `json:"false"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
