package feed

import (
	"crypto/sha1" //nolint:gosec // identifier derivation, not security
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

// normalizer defaults
const (
	DefaultTitleLimit = 256         // bounds the display title length
	DefaultProvider   = "instagram" // postID namespace prefix
)

// Normalizer converts both input shapes (feed-webhook item and operator
// manual submission) into one canonical post record so both entry points
// converge on a single downstream pipeline.
type Normalizer struct {
	provider   string
	titleLimit int
	sanitizer  *bluemonday.Policy
}

// NewNormalizer creates a normalizer for the given provider namespace with a
// title display bound. An empty provider falls back to the default; a limit
// too small to hold a truncated title (under 4 runes) falls back too.
func NewNormalizer(provider string, titleLimit int) *Normalizer {
	if provider == "" {
		provider = DefaultProvider
	}
	if titleLimit < 4 {
		titleLimit = DefaultTitleLimit
	}
	return &Normalizer{
		provider:   provider,
		titleLimit: titleLimit,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// FromRaw builds a canonical post from a validated feed item.
// PostID is provider + ":" + guid regardless of the entry point, so a manual
// submission and a later webhook delivery of the same item deduplicate
// against each other.
func (n *Normalizer) FromRaw(item domain.RawItem, sourceType domain.SourceType, guildID string) domain.CanonicalPost {
	body := item.Content
	if body == "" {
		body = item.Description
	}

	post := domain.CanonicalPost{
		PostID:        fmt.Sprintf("%s:%s", n.provider, item.GUID),
		SourceType:    sourceType,
		Title:         n.truncate(n.cleanText(item.Title)),
		BodyText:      n.cleanText(body),
		Author:        strings.TrimSpace(item.Author),
		PublishedAt:   parsePublished(item.PublishedAt),
		TargetGuildID: guildID,
	}

	for _, enc := range item.Enclosures {
		if enc.URL == "" {
			continue
		}
		post.MediaRefs = append(post.MediaRefs, domain.MediaRef{
			URL:       enc.URL,
			MediaType: inferMediaType(enc.URL, enc.MediaType),
		})
	}
	return post
}

// FromManual synthesizes a feed-equivalent item from an operator submission
// and normalizes it identically to the webhook path. The post identifier comes
// from the Instagram /p/<shortcode>/ path; a hash of the URL is the fallback
// when the path shape is missing.
func (n *Normalizer) FromManual(sub domain.ManualSubmission) (domain.CanonicalPost, error) {
	guid, err := extractShortcode(sub.InstagramURL)
	if err != nil {
		return domain.CanonicalPost{}, fmt.Errorf("extract post identifier: %w", err)
	}

	item := domain.RawItem{
		GUID:        guid,
		Title:       sub.Caption,
		Link:        sub.InstagramURL,
		Description: sub.Caption,
	}
	if sub.ImageURL != "" {
		item.Enclosures = append(item.Enclosures, domain.Enclosure{URL: sub.ImageURL, MediaType: "image"})
	}
	if sub.VideoURL != "" {
		item.Enclosures = append(item.Enclosures, domain.Enclosure{URL: sub.VideoURL, MediaType: "video"})
	}

	return n.FromRaw(item, domain.SourceManual, sub.GuildID), nil
}

// cleanText strips HTML and collapses whitespace from provider-supplied text
func (n *Normalizer) cleanText(s string) string {
	return strings.Join(strings.Fields(n.sanitizer.Sanitize(s)), " ")
}

func (n *Normalizer) truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= n.titleLimit {
		return s
	}
	return string(runes[:n.titleLimit-3]) + "..."
}

// extractShortcode pulls the stable identifier out of an Instagram-style
// https://<host>/p/<id>/ URL
func extractShortcode(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "p" && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}

	// no /p/<id>/ shape, derive a stable identifier from the URL itself
	sum := sha1.Sum([]byte(rawURL)) //nolint:gosec // identifier derivation
	return hex.EncodeToString(sum[:8]), nil
}

// inferMediaType picks a media type from the declared type or URL extension
func inferMediaType(mediaURL, declared string) string {
	if declared != "" {
		if strings.HasPrefix(declared, "image") {
			return "image"
		}
		if strings.HasPrefix(declared, "video") {
			return "video"
		}
		return declared
	}

	switch strings.ToLower(path.Ext(strings.SplitN(mediaURL, "?", 2)[0])) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "image"
	case ".mp4", ".mov", ".webm", ".m4v":
		return "video"
	}
	return "unknown"
}

// parsePublished handles the assorted date formats feed providers emit
func parsePublished(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return ts
}
