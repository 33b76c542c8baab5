package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

func setupTestRepo(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func TestPostRepository_ShouldProcessAndMark(t *testing.T) {
	repos := setupTestRepo(t)
	ctx := context.Background()

	ok, err := repos.Post.ShouldProcess(ctx, "instagram:a")
	require.NoError(t, err)
	assert.True(t, ok, "fresh post should process")

	require.NoError(t, repos.Post.MarkProcessed(ctx, "instagram:a"))

	ok, err = repos.Post.ShouldProcess(ctx, "instagram:a")
	require.NoError(t, err)
	assert.False(t, ok, "marked post should not process again")

	ok, err = repos.Post.ShouldProcess(ctx, "instagram:b")
	require.NoError(t, err)
	assert.True(t, ok, "other posts unaffected")
}

func TestPostRepository_MarkProcessedIdempotent(t *testing.T) {
	repos := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repos.Post.MarkProcessed(ctx, "instagram:a"))
	require.NoError(t, repos.Post.MarkProcessed(ctx, "instagram:a"), "second mark is a no-op, not an error")

	var count int
	require.NoError(t, repos.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM posted_posts WHERE post_id = ?", "instagram:a"))
	assert.Equal(t, 1, count)
}

func TestPostRepository_RecordOutcome(t *testing.T) {
	repos := setupTestRepo(t)
	ctx := context.Background()

	post := domain.CanonicalPost{PostID: "instagram:a", SourceType: domain.SourceFeed}
	res := domain.ItemResult{PostID: "instagram:a", Outcome: domain.OutcomeFiltered, Reason: "age-gated"}
	cls := domain.ClassificationResult{RequiresAgeGate: true, Confidence: 0.42, MatchedTerms: []string{"cannabis", "thc"}}

	require.NoError(t, repos.Post.RecordOutcome(ctx, post, res, cls))

	var row struct {
		PostID       string  `db:"post_id"`
		SourceType   string  `db:"source_type"`
		Outcome      string  `db:"outcome"`
		Reason       string  `db:"reason"`
		AgeGated     bool    `db:"age_gated"`
		Confidence   float64 `db:"confidence"`
		MatchedTerms string  `db:"matched_terms"`
	}
	err := repos.DB.GetContext(ctx, &row,
		"SELECT post_id, source_type, outcome, reason, age_gated, confidence, matched_terms FROM outcomes WHERE post_id = ?",
		"instagram:a")
	require.NoError(t, err)

	assert.Equal(t, "feed", row.SourceType)
	assert.Equal(t, "filtered", row.Outcome)
	assert.Equal(t, "age-gated", row.Reason)
	assert.True(t, row.AgeGated)
	assert.InDelta(t, 0.42, row.Confidence, 0.001)
	assert.JSONEq(t, `["cannabis","thc"]`, row.MatchedTerms)
}

func TestPostRepository_Stats(t *testing.T) {
	repos := setupTestRepo(t)
	ctx := context.Background()

	record := func(id string, outcome domain.Outcome, gated bool) {
		post := domain.CanonicalPost{PostID: id, SourceType: domain.SourceFeed}
		res := domain.ItemResult{PostID: id, Outcome: outcome}
		cls := domain.ClassificationResult{RequiresAgeGate: gated}
		require.NoError(t, repos.Post.RecordOutcome(ctx, post, res, cls))
	}

	record("instagram:a", domain.OutcomeSuccess, false)
	record("instagram:b", domain.OutcomeSuccess, true)
	record("instagram:c", domain.OutcomeFiltered, true)
	record("instagram:d", domain.OutcomeFailed, false)

	stats, err := repos.Post.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalProcessed)
	assert.Equal(t, int64(2), stats.Succeeded)
	assert.Equal(t, int64(1), stats.Filtered)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(2), stats.AgeGated)
}

func TestPostRepository_StatsEmpty(t *testing.T) {
	repos := setupTestRepo(t)

	stats, err := repos.Post.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, stats)
}

func TestNewRepositories_Ping(t *testing.T) {
	repos := setupTestRepo(t)
	require.NoError(t, repos.Ping(context.Background()))
}
