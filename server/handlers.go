package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/webhook"
)

// SignatureHeader carries the HMAC hex signature of the raw request body
const SignatureHeader = "X-Webhook-Signature"

// processedResponse is the webhook/manual success body. Any 2xx tells the
// provider not to redeliver, even with partial per-item failures.
type processedResponse struct {
	Success   bool                `json:"success"`
	Processed processedCounts     `json:"processed"`
	Message   string              `json:"message"`
	PerItem   []domain.ItemResult `json:"per_item,omitempty"`
}

type processedCounts struct {
	Success  int `json:"success"`
	Filtered int `json:"filtered"`
	Failed   int `json:"failed"`
}

// webhookHandler accepts signed feed-update envelopes from the provider.
// Pipeline order: rate limit, signature, validation, normalization,
// processing. The first three short-circuit before any item is touched.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[ERROR] panic in webhook handler: %v", rec)
			renderJSON(w, r, http.StatusInternalServerError,
				map[string]interface{}{"error": "internal error", "retryable": true})
		}
	}()

	origin := clientIP(r)

	if allowed, retryAfter := s.pipeline.Limiter.Admit(origin); !allowed {
		secs := int(retryAfter / time.Second)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
		renderJSON(w, r, http.StatusTooManyRequests,
			map[string]interface{}{"error": "rate limited", "retry_after_seconds": secs})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, fmt.Errorf("read body: %w", err), http.StatusBadRequest)
		return
	}

	if err := s.pipeline.Verifier.Verify(body, r.Header.Get(SignatureHeader)); err != nil {
		s.renderVerifyError(w, r, err, origin, body)
		return
	}

	var env domain.InboundEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		renderError(w, r, fmt.Errorf("invalid json payload"), http.StatusBadRequest)
		return
	}

	if err := webhook.ValidateEnvelope(&env); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	posts := make([]domain.CanonicalPost, 0, len(env.Items))
	for _, item := range env.Items {
		posts = append(posts, s.pipeline.Normalizer.FromRaw(item, domain.SourceFeed, ""))
	}

	// started batches run to completion even if the provider disconnects,
	// avoiding partial dedup marks
	res := s.pipeline.Processor.ProcessBatch(context.WithoutCancel(r.Context()), posts)

	renderJSON(w, r, http.StatusOK, processedResponse{
		Success:   true,
		Processed: processedCounts{Success: res.Succeeded, Filtered: res.Filtered, Failed: res.Failed},
		Message: fmt.Sprintf("processed %d items: %d posted, %d filtered, %d failed",
			res.Total, res.Succeeded, res.Filtered, res.Failed),
	})
}

// renderVerifyError maps verifier failures to the status contract. The secret
// is never logged; the payload is truncated.
func (s *Server) renderVerifyError(w http.ResponseWriter, r *http.Request, err error, origin string, body []byte) {
	if errors.Is(err, webhook.ErrNotConfigured) {
		log.Printf("[ERROR] webhook secret not configured, rejecting request from %s", origin)
		renderJSON(w, r, http.StatusServiceUnavailable,
			map[string]interface{}{"error": "webhook not configured", "retryable": true})
		return
	}

	log.Printf("[WARN] signature verification failed from %s: %v, payload: %s", origin, err, truncatePayload(body))
	renderError(w, r, err, http.StatusUnauthorized)
}

// manualHandler accepts the operator fallback submission, JSON or form
// encoded, and sends the single resulting post through the same pipeline
func (s *Server) manualHandler(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeManual(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := webhook.ValidateManual(sub); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	post, err := s.pipeline.Normalizer.FromManual(*sub)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	res := s.pipeline.Processor.ProcessBatch(context.WithoutCancel(r.Context()), []domain.CanonicalPost{post})

	renderJSON(w, r, http.StatusOK, processedResponse{
		Success:   res.Failed == 0,
		Processed: processedCounts{Success: res.Succeeded, Filtered: res.Filtered, Failed: res.Failed},
		Message:   manualMessage(res),
		PerItem:   res.PerItem,
	})
}

// decodeManual reads a manual submission from JSON or form body
func decodeManual(r *http.Request) (*domain.ManualSubmission, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var sub domain.ManualSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			return nil, fmt.Errorf("invalid json payload")
		}
		return &sub, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form data")
	}
	return &domain.ManualSubmission{
		InstagramURL: r.FormValue("instagram_url"),
		Caption:      r.FormValue("caption"),
		ImageURL:     r.FormValue("image_url"),
		VideoURL:     r.FormValue("video_url"),
		PostType:     r.FormValue("post_type"),
		GuildID:      r.FormValue("guild_id"),
	}, nil
}

func manualMessage(res domain.BatchResult) string {
	if len(res.PerItem) == 0 {
		return "nothing processed"
	}
	item := res.PerItem[0]
	switch item.Outcome {
	case domain.OutcomeSuccess:
		if item.Reason != "" {
			return fmt.Sprintf("post %s skipped: %s", item.PostID, item.Reason)
		}
		return fmt.Sprintf("post %s published", item.PostID)
	case domain.OutcomeFiltered:
		return fmt.Sprintf("post %s filtered: %s", item.PostID, item.Reason)
	default:
		return fmt.Sprintf("post %s failed: %s", item.PostID, item.Reason)
	}
}

// manualFormHandler serves the operator submission form
func (s *Server) manualFormHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, manualFormHTML)
}

// pullHandler triggers the RSS fallback fetch of all configured feeds.
// The same per-origin rate limiter as the webhook path applies; a pull fans
// out outbound fetches and must not be free to hammer.
func (s *Server) pullHandler(w http.ResponseWriter, r *http.Request) {
	if allowed, retryAfter := s.pipeline.Limiter.Admit(clientIP(r)); !allowed {
		secs := int(retryAfter / time.Second)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
		renderJSON(w, r, http.StatusTooManyRequests,
			map[string]interface{}{"error": "rate limited", "retry_after_seconds": secs})
		return
	}

	if s.pipeline.Puller == nil {
		renderError(w, r, fmt.Errorf("no fallback feeds configured"), http.StatusBadRequest)
		return
	}
	if s.pipeline.AdminToken != "" && r.Header.Get("X-Admin-Token") != s.pipeline.AdminToken {
		renderError(w, r, fmt.Errorf("invalid admin token"), http.StatusUnauthorized)
		return
	}

	res := s.pipeline.Puller.PullAll(context.WithoutCancel(r.Context()))

	renderJSON(w, r, http.StatusOK, processedResponse{
		Success:   true,
		Processed: processedCounts{Success: res.Succeeded, Filtered: res.Filtered, Failed: res.Failed},
		Message: fmt.Sprintf("pulled %d items: %d posted, %d filtered, %d failed",
			res.Total, res.Succeeded, res.Filtered, res.Failed),
	})
}

// healthHandler returns liveness info and static service metadata
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "feedbridge",
		"version": s.version,
		"time":    time.Now().UTC(),
	})
}

// statsHandler returns aggregate processing statistics
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.pipeline.Stats.Stats(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get stats: %v", err)
		renderError(w, r, fmt.Errorf("failed to get stats"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// clientIP picks the originating address, preferring the first
// X-Forwarded-For entry set by the reverse proxy
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func truncatePayload(body []byte) string {
	const limit = 200
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}

const manualFormHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>feedbridge - manual submission</title>
	<style>
		body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; padding: 0 1rem; }
		label { display: block; margin-top: 1rem; font-weight: bold; }
		input, select { width: 100%; padding: 0.4rem; margin-top: 0.25rem; }
		button { margin-top: 1.5rem; padding: 0.5rem 1.5rem; }
	</style>
</head>
<body>
	<h1>Manual post submission</h1>
	<form method="post" action="/manual">
		<label for="instagram_url">Instagram URL (required)</label>
		<input type="url" id="instagram_url" name="instagram_url" placeholder="https://www.instagram.com/p/ABC123/" required>
		<label for="caption">Caption (required)</label>
		<input type="text" id="caption" name="caption" required>
		<label for="image_url">Image URL</label>
		<input type="url" id="image_url" name="image_url">
		<label for="video_url">Video URL</label>
		<input type="url" id="video_url" name="video_url">
		<label for="post_type">Post type</label>
		<select id="post_type" name="post_type">
			<option value="">auto</option>
			<option value="image">image</option>
			<option value="video">video</option>
		</select>
		<label for="guild_id">Guild ID</label>
		<input type="text" id="guild_id" name="guild_id">
		<button type="submit">Submit</button>
	</form>
</body>
</html>
`
