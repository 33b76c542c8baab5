package domain

import "time"

// SourceType identifies which entry point produced a canonical post
type SourceType string

// known source types
const (
	SourceFeed   SourceType = "feed"
	SourceManual SourceType = "manual"
)

// CanonicalPost is the normalized, source-agnostic representation of one piece
// of inbound content. PostID is stable across repeated deliveries of the same
// source item, which is what makes idempotency possible.
type CanonicalPost struct {
	PostID        string
	SourceType    SourceType
	Title         string
	BodyText      string
	Author        string
	PublishedAt   time.Time
	MediaRefs     []MediaRef
	TargetGuildID string
}

// MediaRef is a typed media attachment on a canonical post
type MediaRef struct {
	URL       string
	MediaType string
}

// ClassificationResult holds the content classifier verdict for one post
type ClassificationResult struct {
	RequiresAgeGate bool
	Confidence      float64
	MatchedTerms    []string
	Categories      []string
}

// Outcome is the terminal processing state of one item
type Outcome string

// item outcomes
const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFiltered Outcome = "filtered"
	OutcomeFailed   Outcome = "failed"
)

// ItemResult records the terminal outcome of a single item within a batch
type ItemResult struct {
	PostID  string  `json:"post_id"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// BatchResult aggregates per-item outcomes for one processed envelope
type BatchResult struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Filtered  int          `json:"filtered"`
	Failed    int          `json:"failed"`
	PerItem   []ItemResult `json:"per_item"`
}

// Add appends one item result and bumps the matching counter
func (b *BatchResult) Add(res ItemResult) {
	b.Total++
	switch res.Outcome {
	case OutcomeSuccess:
		b.Succeeded++
	case OutcomeFiltered:
		b.Filtered++
	case OutcomeFailed:
		b.Failed++
	}
	b.PerItem = append(b.PerItem, res)
}

// Stats holds aggregate processing counters served by GET /stats
type Stats struct {
	TotalProcessed int64 `json:"total_processed"`
	Succeeded      int64 `json:"succeeded"`
	Filtered       int64 `json:"filtered"`
	Failed         int64 `json:"failed"`
	AgeGated       int64 `json:"age_gated"`
}
