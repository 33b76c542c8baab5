package domain

// InboundEnvelope is the raw webhook body delivered by the feed provider.
// One envelope carries one or more items from a single source feed.
type InboundEnvelope struct {
	SourceFeedID    string    `json:"source_feed_id"`
	SourceFeedTitle string    `json:"source_feed_title"`
	Items           []RawItem `json:"items"`
}

// RawItem is a single feed entry as delivered by the provider.
// GUID is unique within a provider, not globally.
type RawItem struct {
	GUID        string      `json:"guid"`
	Title       string      `json:"title"`
	Link        string      `json:"link"`
	Description string      `json:"description,omitempty"`
	Content     string      `json:"content,omitempty"`
	Author      string      `json:"author,omitempty"`
	PublishedAt string      `json:"published_at,omitempty"`
	Enclosures  []Enclosure `json:"enclosures,omitempty"`
}

// Enclosure is a media attachment reference on a raw feed item
type Enclosure struct {
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
}

// ManualSubmission is the operator-entered fallback form for posting a single
// item without waiting for the webhook provider
type ManualSubmission struct {
	InstagramURL string `json:"instagram_url"`
	Caption      string `json:"caption"`
	ImageURL     string `json:"image_url,omitempty"`
	VideoURL     string `json:"video_url,omitempty"`
	PostType     string `json:"post_type,omitempty"`
	GuildID      string `json:"guild_id,omitempty"`
}
