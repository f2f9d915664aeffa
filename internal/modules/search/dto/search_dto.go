package dto

import "encoding/json"

type SearchQuery struct {
	Q     string `form:"q"`
	Type  string `form:"type"`
	Limit int64  `form:"limit"`
}

type SearchResponse struct {
	Index              string            `json:"index"`
	Query              string            `json:"query"`
	Hits               []json.RawMessage `json:"hits"`
	EstimatedTotalHits int64             `json:"estimated_total_hits"`
}
