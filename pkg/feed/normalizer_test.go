package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

func TestNormalizer_FromRaw(t *testing.T) {
	n := NewNormalizer("", 0)

	t.Run("basic item", func(t *testing.T) {
		item := domain.RawItem{
			GUID:        "ABC123",
			Title:       "New drop this weekend",
			Link:        "https://instagram.com/p/ABC123/",
			Description: "short description",
			Content:     "<p>full <b>content</b> here</p>",
			Author:      "  someshop  ",
			PublishedAt: "Mon, 02 Jan 2006 15:04:05 MST",
		}

		post := n.FromRaw(item, domain.SourceFeed, "guild-1")
		assert.Equal(t, "instagram:ABC123", post.PostID)
		assert.Equal(t, domain.SourceFeed, post.SourceType)
		assert.Equal(t, "New drop this weekend", post.Title)
		assert.Equal(t, "full content here", post.BodyText, "content preferred over description, html stripped")
		assert.Equal(t, "someshop", post.Author)
		assert.Equal(t, "guild-1", post.TargetGuildID)
		assert.Equal(t, 2006, post.PublishedAt.Year())
	})

	t.Run("description fallback when content empty", func(t *testing.T) {
		post := n.FromRaw(domain.RawItem{GUID: "X", Description: "only description"}, domain.SourceFeed, "")
		assert.Equal(t, "only description", post.BodyText)
	})

	t.Run("html and whitespace collapsed", func(t *testing.T) {
		item := domain.RawItem{
			GUID:  "X",
			Title: "  <script>alert(1)</script>hello   world  ",
		}
		post := n.FromRaw(item, domain.SourceFeed, "")
		assert.Equal(t, "hello world", post.Title)
	})

	t.Run("title truncated at limit", func(t *testing.T) {
		short := NewNormalizer("instagram", 10)
		post := short.FromRaw(domain.RawItem{GUID: "X", Title: "this title is far too long"}, domain.SourceFeed, "")
		assert.Equal(t, 10, len([]rune(post.Title)))
		assert.True(t, strings.HasSuffix(post.Title, "..."))
	})

	t.Run("tiny title limit falls back to default", func(t *testing.T) {
		tiny := NewNormalizer("instagram", 2)
		post := tiny.FromRaw(domain.RawItem{GUID: "X", Title: "short but over two"}, domain.SourceFeed, "")
		assert.Equal(t, "short but over two", post.Title)
	})

	t.Run("unparsable date gives zero time", func(t *testing.T) {
		post := n.FromRaw(domain.RawItem{GUID: "X", PublishedAt: "not a date"}, domain.SourceFeed, "")
		assert.True(t, post.PublishedAt.IsZero())
	})

	t.Run("media refs from enclosures", func(t *testing.T) {
		item := domain.RawItem{
			GUID: "X",
			Enclosures: []domain.Enclosure{
				{URL: "https://cdn.example.com/a.jpg"},
				{URL: "https://cdn.example.com/b.mp4?token=xyz"},
				{URL: "https://cdn.example.com/c", MediaType: "image/webp"},
				{URL: ""}, // dropped
				{URL: "https://cdn.example.com/d.bin"},
			},
		}
		post := n.FromRaw(item, domain.SourceFeed, "")
		require.Len(t, post.MediaRefs, 4)
		assert.Equal(t, "image", post.MediaRefs[0].MediaType)
		assert.Equal(t, "video", post.MediaRefs[1].MediaType, "query string ignored for extension")
		assert.Equal(t, "image", post.MediaRefs[2].MediaType, "declared mime type wins")
		assert.Equal(t, "unknown", post.MediaRefs[3].MediaType)
	})
}

func TestNormalizer_FromManual(t *testing.T) {
	n := NewNormalizer("", 0)

	t.Run("shortcode from url path", func(t *testing.T) {
		post, err := n.FromManual(domain.ManualSubmission{
			InstagramURL: "https://www.instagram.com/p/Cxy123abc/",
			Caption:      "look at this",
			ImageURL:     "https://cdn.example.com/pic.jpg",
			GuildID:      "guild-2",
		})
		require.NoError(t, err)
		assert.Equal(t, "instagram:Cxy123abc", post.PostID)
		assert.Equal(t, domain.SourceManual, post.SourceType)
		assert.Equal(t, "look at this", post.Title)
		assert.Equal(t, "look at this", post.BodyText)
		assert.Equal(t, "guild-2", post.TargetGuildID)
		require.Len(t, post.MediaRefs, 1)
		assert.Equal(t, "image", post.MediaRefs[0].MediaType)
	})

	t.Run("image and video both attached", func(t *testing.T) {
		post, err := n.FromManual(domain.ManualSubmission{
			InstagramURL: "https://instagram.com/p/ABC/",
			Caption:      "reel",
			ImageURL:     "https://cdn.example.com/thumb.jpg",
			VideoURL:     "https://cdn.example.com/clip.mp4",
		})
		require.NoError(t, err)
		require.Len(t, post.MediaRefs, 2)
		assert.Equal(t, "video", post.MediaRefs[1].MediaType)
	})

	t.Run("hash fallback for non-post url", func(t *testing.T) {
		post, err := n.FromManual(domain.ManualSubmission{
			InstagramURL: "https://instagram.com/someaccount",
			Caption:      "profile link",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(post.PostID, "instagram:"))
		id := strings.TrimPrefix(post.PostID, "instagram:")
		assert.Len(t, id, 16, "hex of sha1 prefix")

		// same url always derives the same identifier
		again, err := n.FromManual(domain.ManualSubmission{InstagramURL: "https://instagram.com/someaccount", Caption: "x"})
		require.NoError(t, err)
		assert.Equal(t, post.PostID, again.PostID)
	})
}

// a manual submission for a post and the provider webhook delivery of the
// same post have to produce identical identifiers, otherwise they would not
// deduplicate against each other
func TestNormalizer_ManualMatchesWebhook(t *testing.T) {
	n := NewNormalizer("instagram", 256)

	fromFeed := n.FromRaw(domain.RawItem{
		GUID:        "Cxy123abc",
		Title:       "look at this",
		Link:        "https://www.instagram.com/p/Cxy123abc/",
		Description: "look at this",
	}, domain.SourceFeed, "guild-2")

	fromManual, err := n.FromManual(domain.ManualSubmission{
		InstagramURL: "https://www.instagram.com/p/Cxy123abc/",
		Caption:      "look at this",
		GuildID:      "guild-2",
	})
	require.NoError(t, err)

	assert.Equal(t, fromFeed.PostID, fromManual.PostID)
	assert.Equal(t, fromFeed.Title, fromManual.Title)
	assert.Equal(t, fromFeed.BodyText, fromManual.BodyText)
	assert.Equal(t, fromFeed.TargetGuildID, fromManual.TargetGuildID)
	assert.NotEqual(t, fromFeed.SourceType, fromManual.SourceType)
}

func TestParsePublished(t *testing.T) {
	tbl := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"garbage", time.Time{}},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, parsePublished(tt.in).UTC(), tt.in)
	}
}
