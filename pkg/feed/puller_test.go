package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/feed/mocks"
)

func TestPuller_PullAll(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testRSS))
	}))
	defer ts.Close()

	processor := &mocks.BatchProcessorMock{
		ProcessBatchFunc: func(_ context.Context, posts []domain.CanonicalPost) domain.BatchResult {
			var res domain.BatchResult
			for _, p := range posts {
				res.Add(domain.ItemResult{PostID: p.PostID, Outcome: domain.OutcomeSuccess})
			}
			return res
		},
	}

	sources := []Source{
		{URL: ts.URL, GuildID: "guild-1"},
		{URL: ts.URL, GuildID: "guild-2"},
	}
	p := NewPuller(NewFetcher(5*time.Second, ""), NewNormalizer("", 0), processor, sources, 4)

	res := p.PullAll(context.Background())
	assert.Equal(t, 4, res.Total, "two feeds with two items each")
	assert.Equal(t, 4, res.Succeeded)
	assert.Equal(t, 0, res.Failed)

	calls := processor.ProcessBatchCalls()
	require.Len(t, calls, 2)
	guilds := map[string]bool{}
	for _, call := range calls {
		require.Len(t, call.Posts, 2)
		guilds[call.Posts[0].TargetGuildID] = true
	}
	assert.True(t, guilds["guild-1"] && guilds["guild-2"], "each source keeps its own guild target")
}

func TestPuller_PullAllFailedSourceSkipped(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testRSS))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	processor := &mocks.BatchProcessorMock{
		ProcessBatchFunc: func(_ context.Context, posts []domain.CanonicalPost) domain.BatchResult {
			var res domain.BatchResult
			for _, p := range posts {
				res.Add(domain.ItemResult{PostID: p.PostID, Outcome: domain.OutcomeSuccess})
			}
			return res
		},
	}

	sources := []Source{{URL: bad.URL}, {URL: good.URL}}
	p := NewPuller(NewFetcher(5*time.Second, ""), NewNormalizer("", 0), processor, sources, 2)

	res := p.PullAll(context.Background())
	assert.Equal(t, 2, res.Total, "the failing source is skipped, not fatal")
	assert.Len(t, processor.ProcessBatchCalls(), 1)
}

func TestPuller_WorkerLimit(t *testing.T) {
	var active, maxActive int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		cur := atomic.AddInt32(&active, 1)
		for {
			prev := atomic.LoadInt32(&maxActive)
			if cur <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		_, _ = w.Write([]byte(testRSS))
	}))
	defer ts.Close()

	processor := &mocks.BatchProcessorMock{
		ProcessBatchFunc: func(_ context.Context, _ []domain.CanonicalPost) domain.BatchResult {
			return domain.BatchResult{}
		},
	}

	sources := make([]Source, 6)
	for i := range sources {
		sources[i] = Source{URL: ts.URL}
	}
	p := NewPuller(NewFetcher(5*time.Second, ""), NewNormalizer("", 0), processor, sources, 2)
	p.PullAll(context.Background())

	assert.LessOrEqual(t, atomic.LoadInt32(&maxActive), int32(2))
	assert.Len(t, processor.ProcessBatchCalls(), 6)
}
