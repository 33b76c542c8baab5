package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/dispatch"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier
//go:generate moq -out mocks/dedup_guard.go -pkg mocks -skip-ensure -fmt goimports . DedupGuard
//go:generate moq -out mocks/dispatcher.go -pkg mocks -skip-ensure -fmt goimports . Dispatcher
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . OutcomeRecorder

// Classifier decides whether a post requires age-gated handling
type Classifier interface {
	Classify(post domain.CanonicalPost) (domain.ClassificationResult, error)
}

// DedupGuard prevents reprocessing of previously dispatched posts.
// ShouldProcess is checked immediately before dispatch; MarkProcessed is
// called only after confirmed successful dispatch, giving at-least-once
// rather than exactly-once semantics.
type DedupGuard interface {
	ShouldProcess(ctx context.Context, postID string) (bool, error)
	MarkProcessed(ctx context.Context, postID string) error
}

// Dispatcher hands an accepted post to the chat-platform poster. It must be
// safe to call at most once per accepted post and must wrap permanent
// rejections with dispatch.ErrPermanent so outcomes classify correctly.
type Dispatcher interface {
	Dispatch(ctx context.Context, post domain.CanonicalPost, cls domain.ClassificationResult) error
}

// OutcomeRecorder persists per-item outcomes for the stats endpoint
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, post domain.CanonicalPost, res domain.ItemResult, cls domain.ClassificationResult) error
}

// Processor drives each post through classification, dedup and dispatch,
// aggregating per-batch outcomes. One post's failure never stops processing
// of subsequent posts.
type Processor struct {
	classifier Classifier
	guard      DedupGuard
	dispatcher Dispatcher
	recorder   OutcomeRecorder

	allowAgeGated    bool
	filterConfidence float64
}

// Config holds processor dependencies and policy knobs
type Config struct {
	Classifier Classifier
	Guard      DedupGuard
	Dispatcher Dispatcher
	Recorder   OutcomeRecorder

	// AllowAgeGated permits dispatch of age-gated posts (the downstream
	// channel is age-restricted). When false such posts are filtered.
	AllowAgeGated bool

	// FilterConfidence filters posts outright at or above this confidence
	// regardless of age-gate policy. Zero disables the hard filter.
	FilterConfidence float64
}

// New creates a processor with the provided configuration
func New(cfg Config) *Processor {
	return &Processor{
		classifier:       cfg.Classifier,
		guard:            cfg.Guard,
		dispatcher:       cfg.Dispatcher,
		recorder:         cfg.Recorder,
		allowAgeGated:    cfg.AllowAgeGated,
		filterConfidence: cfg.FilterConfidence,
	}
}

// ProcessBatch runs every post through the pipeline sequentially and returns
// aggregated outcomes. It never aborts early; a panic while processing one
// post is recovered and recorded as that post's failure.
func (p *Processor) ProcessBatch(ctx context.Context, posts []domain.CanonicalPost) domain.BatchResult {
	var batch domain.BatchResult
	for _, post := range posts {
		batch.Add(p.processItem(ctx, post))
	}
	lgr.Printf("[INFO] batch processed: total %d, succeeded %d, filtered %d, failed %d",
		batch.Total, batch.Succeeded, batch.Filtered, batch.Failed)
	return batch
}

// processItem drives one post to a terminal outcome
func (p *Processor) processItem(ctx context.Context, post domain.CanonicalPost) (res domain.ItemResult) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] panic processing post %s: %v", post.PostID, r)
			res = domain.ItemResult{PostID: post.PostID, Outcome: domain.OutcomeFailed, Reason: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	cls, err := p.classifier.Classify(post)
	if err != nil {
		// fail open: availability over strict safety at the detection layer
		lgr.Printf("[WARN] classifier failed for post %s, treating as unrestricted: %v", post.PostID, err)
		cls = domain.ClassificationResult{}
	}

	res = p.resolve(ctx, post, cls)
	if p.recorder != nil {
		if err := p.recorder.RecordOutcome(ctx, post, res, cls); err != nil {
			lgr.Printf("[WARN] failed to record outcome for post %s: %v", post.PostID, err)
		}
	}
	return res
}

func (p *Processor) resolve(ctx context.Context, post domain.CanonicalPost, cls domain.ClassificationResult) domain.ItemResult {
	if p.filterConfidence > 0 && cls.Confidence >= p.filterConfidence {
		lgr.Printf("[INFO] filtered post %s: confidence %.2f over hard limit", post.PostID, cls.Confidence)
		return domain.ItemResult{
			PostID:  post.PostID,
			Outcome: domain.OutcomeFiltered,
			Reason:  fmt.Sprintf("content confidence %.2f exceeds filter limit", cls.Confidence),
		}
	}

	if cls.RequiresAgeGate && !p.allowAgeGated {
		lgr.Printf("[INFO] filtered post %s: age-gated content not allowed for target audience", post.PostID)
		return domain.ItemResult{
			PostID:  post.PostID,
			Outcome: domain.OutcomeFiltered,
			Reason:  "age-gated content cannot be posted to the target audience",
		}
	}

	// dedup check happens immediately before dispatch
	process, err := p.guard.ShouldProcess(ctx, post.PostID)
	if err != nil {
		// guard failure falls through to dispatch; redelivery stays safe
		lgr.Printf("[WARN] dedup check failed for post %s, proceeding: %v", post.PostID, err)
		process = true
	}
	if !process {
		lgr.Printf("[INFO] skipping duplicate post %s", post.PostID)
		return domain.ItemResult{PostID: post.PostID, Outcome: domain.OutcomeSuccess, Reason: "duplicate, already posted"}
	}

	if err := p.dispatcher.Dispatch(ctx, post, cls); err != nil {
		if errors.Is(err, dispatch.ErrPermanent) {
			lgr.Printf("[WARN] post %s rejected permanently by downstream: %v", post.PostID, err)
			return domain.ItemResult{PostID: post.PostID, Outcome: domain.OutcomeFiltered, Reason: err.Error()}
		}
		lgr.Printf("[WARN] dispatch failed for post %s: %v", post.PostID, err)
		return domain.ItemResult{PostID: post.PostID, Outcome: domain.OutcomeFailed, Reason: err.Error()}
	}

	// mark only after confirmed dispatch so failures stay eligible for redelivery
	if err := p.guard.MarkProcessed(ctx, post.PostID); err != nil {
		lgr.Printf("[WARN] failed to mark post %s processed: %v", post.PostID, err)
	}
	return domain.ItemResult{PostID: post.PostID, Outcome: domain.OutcomeSuccess}
}
