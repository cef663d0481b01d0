// Package api is the HTTP client for the bookmark ranking service.
package api

// Result is one scored bookmark returned by a search or similarity query.
type Result struct {
	ID         int      `json:"id"`
	URL        string   `json:"url"`
	Title      string   `json:"title,omitempty"`
	Score      float64  `json:"score"`
	Snippet    string   `json:"snippet,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
}

// Response is the body of /api/search and /api/similar.
type Response struct {
	Query   string   `json:"query,omitempty"`
	Results []Result `json:"results"`
	Total   int      `json:"total"`
}

// Status is the body of /api/status.
type Status struct {
	IndexCount int    `json:"indexCount"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
	OllamaOK   bool   `json:"ollamaOk"`
}

// ReindexResult is the body of POST /api/reindex. The service starts the
// rebuild in the background and answers at once.
type ReindexResult struct {
	Status string `json:"status"`
}

// Request limits fixed by the client contract.
const (
	SearchLimit  = 20
	SimilarLimit = 10
)
