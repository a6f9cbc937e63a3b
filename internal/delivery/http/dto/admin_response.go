package dto

type CacheInvalidationResponse struct {
	Pattern string `json:"pattern,omitempty"`
	URL     string `json:"url,omitempty"`
	Deleted int    `json:"deleted"`
}
