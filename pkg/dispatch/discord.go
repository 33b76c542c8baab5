package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

// ErrPermanent marks a downstream rejection that will not succeed on
// redelivery; the orchestrator records such posts as filtered instead of
// failed
var ErrPermanent = errors.New("permanent dispatch failure")

const maxEmbedDescription = 2048

// Discord posts accepted content to a Discord channel via an incoming
// webhook URL. Each call makes exactly one attempt bounded by the client
// timeout; retry on transient failure is the upstream provider's job.
type Discord struct {
	webhookURL string
	client     *http.Client
}

// NewDiscord creates a Discord dispatcher for the given webhook URL
func NewDiscord(webhookURL string, timeout time.Duration) *Discord {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// discord webhook wire types
type discordMessage struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Footer      *discordAsset `json:"footer,omitempty"`
	Image       *discordAsset `json:"image,omitempty"`
	Video       *discordAsset `json:"video,omitempty"`
}

type discordAsset struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Dispatch posts one canonical post to the channel. Transient failures
// (network, timeout, 5xx, 429) return plain errors; 4xx rejections are
// wrapped with ErrPermanent.
func (d *Discord) Dispatch(ctx context.Context, post domain.CanonicalPost, cls domain.ClassificationResult) error {
	if d.webhookURL == "" {
		return fmt.Errorf("discord webhook url not configured: %w", ErrPermanent)
	}

	payload, err := json.Marshal(d.buildMessage(post, cls))
	if err != nil {
		return fmt.Errorf("marshal discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to discord: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		lgr.Printf("[DEBUG] dispatched post %s to discord", post.PostID)
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, readBody(resp.Body))
	default:
		return fmt.Errorf("discord rejected post with %d: %s: %w", resp.StatusCode, readBody(resp.Body), ErrPermanent)
	}
}

// buildMessage renders the post as a webhook message with one embed
func (d *Discord) buildMessage(post domain.CanonicalPost, cls domain.ClassificationResult) discordMessage {
	embed := discordEmbed{
		Title:       post.Title,
		Description: truncate(post.BodyText, maxEmbedDescription),
	}
	if post.Author != "" {
		embed.Footer = &discordAsset{Text: post.Author}
	}

	for _, ref := range post.MediaRefs {
		switch ref.MediaType {
		case "image":
			if embed.Image == nil {
				embed.Image = &discordAsset{URL: ref.URL}
			}
		case "video":
			if embed.Video == nil {
				embed.Video = &discordAsset{URL: ref.URL}
			}
		}
	}

	msg := discordMessage{Embeds: []discordEmbed{embed}}
	if cls.RequiresAgeGate {
		msg.Content = fmt.Sprintf("🔞 **21+ content** (%s)", strings.Join(cls.Categories, ", "))
	}
	return msg
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}
