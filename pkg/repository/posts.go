package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

// PostRepository handles posted-post bookkeeping: the durable dedup record
// and per-item outcome rows backing the stats endpoint. It survives restarts,
// which the webhook redelivery contract requires.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(database *sqlx.DB) *PostRepository {
	return &PostRepository{db: database}
}

// ShouldProcess reports whether the post has not been dispatched before
func (r *PostRepository) ShouldProcess(ctx context.Context, postID string) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, "SELECT 1 FROM posted_posts WHERE post_id = ?", postID)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("check posted post: %w", err)
	}
	return false, nil
}

// MarkProcessed records a dispatched post. INSERT OR IGNORE keeps the first
// writer's row when concurrent requests race on the same post.
func (r *PostRepository) MarkProcessed(ctx context.Context, postID string) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO posted_posts (post_id) VALUES (?)", postID)
		if err != nil {
			return fmt.Errorf("mark posted: %w", err)
		}
		return nil
	})
}

// RecordOutcome stores the terminal state of one processed item
func (r *PostRepository) RecordOutcome(ctx context.Context, post domain.CanonicalPost, res domain.ItemResult, cls domain.ClassificationResult) error {
	terms, err := json.Marshal(cls.MatchedTerms)
	if err != nil {
		terms = []byte("[]")
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO outcomes (post_id, source_type, outcome, reason, age_gated, confidence, matched_terms)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		_, err := r.db.ExecContext(ctx, query,
			post.PostID, string(post.SourceType), string(res.Outcome), res.Reason,
			cls.RequiresAgeGate, cls.Confidence, string(terms))
		if err != nil {
			return fmt.Errorf("record outcome: %w", err)
		}
		return nil
	})
}

// Stats aggregates processing counters across all recorded outcomes
func (r *PostRepository) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	query := `
		SELECT
			COUNT(*)                                               AS total_processed,
			COALESCE(SUM(outcome = 'success'), 0)                  AS succeeded,
			COALESCE(SUM(outcome = 'filtered'), 0)                 AS filtered,
			COALESCE(SUM(outcome = 'failed'), 0)                   AS failed,
			COALESCE(SUM(age_gated), 0)                            AS age_gated
		FROM outcomes`

	row := r.db.QueryRowxContext(ctx, query)
	if err := row.Scan(&stats.TotalProcessed, &stats.Succeeded, &stats.Filtered, &stats.Failed, &stats.AgeGated); err != nil {
		return domain.Stats{}, fmt.Errorf("aggregate stats: %w", err)
	}
	return stats, nil
}
