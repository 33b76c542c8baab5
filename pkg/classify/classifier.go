package classify

import (
	"math"
	"sort"
	"strings"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

// Subject is the composite text a post exposes for classification. Field
// confidences are combined with fixed weights, title weighted highest.
type Subject struct {
	Title  string
	Body   string
	Tags   []string
	Author string
}

// Config holds classifier tuning knobs. The confidence constants are
// heuristics and should be validated against labeled data before tightening.
type Config struct {
	TermWeight float64 // confidence added per distinct matched term in a field
	Threshold  float64 // overall confidence at which age-gating is required

	TitleWeight  float64
	BodyWeight   float64
	TagsWeight   float64
	AuthorWeight float64
}

// DefaultConfig returns the standard tuning: 0.2 per term, 0.25 cutoff,
// field weights summing to 1.0
func DefaultConfig() Config {
	return Config{
		TermWeight:   0.2,
		Threshold:    0.25,
		TitleWeight:  0.4,
		BodyWeight:   0.3,
		TagsWeight:   0.2,
		AuthorWeight: 0.1,
	}
}

// Classifier is a pure, deterministic keyword scorer over a weighted lexicon.
// It keeps no state between calls.
type Classifier struct {
	lexicon *Lexicon
	cfg     Config
}

// New creates a classifier with the given lexicon and tuning. Zero-valued
// config fields fall back to defaults.
func New(lexicon *Lexicon, cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.TermWeight <= 0 {
		cfg.TermWeight = def.TermWeight
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.TitleWeight+cfg.BodyWeight+cfg.TagsWeight+cfg.AuthorWeight == 0 {
		cfg.TitleWeight = def.TitleWeight
		cfg.BodyWeight = def.BodyWeight
		cfg.TagsWeight = def.TagsWeight
		cfg.AuthorWeight = def.AuthorWeight
	}
	return &Classifier{lexicon: lexicon, cfg: cfg}
}

// Classify scores the subject against the lexicon and decides whether the
// content requires age-gated handling downstream
func (c *Classifier) Classify(subj Subject) domain.ClassificationResult {
	matched := make(map[string]struct{})
	categories := make(map[string]struct{})

	titleConf := c.scoreField(subj.Title, matched, categories)
	bodyConf := c.scoreField(subj.Body, matched, categories)
	tagsConf := c.scoreField(strings.Join(subj.Tags, " "), matched, categories)
	authorConf := c.scoreField(subj.Author, matched, categories)

	overall := titleConf*c.cfg.TitleWeight +
		bodyConf*c.cfg.BodyWeight +
		tagsConf*c.cfg.TagsWeight +
		authorConf*c.cfg.AuthorWeight

	return domain.ClassificationResult{
		RequiresAgeGate: overall >= c.cfg.Threshold,
		Confidence:      math.Min(1.0, overall),
		MatchedTerms:    sortedKeys(matched),
		Categories:      sortedKeys(categories),
	}
}

// scoreField tests every lexicon term for substring membership in the
// lowercased field and returns min(1, termWeight * distinct matches)
func (c *Classifier) scoreField(text string, matched, categories map[string]struct{}) float64 {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	count := 0
	for _, cat := range c.lexicon.Categories {
		for _, term := range cat.Terms {
			if !strings.Contains(lower, term) {
				continue
			}
			count++
			matched[term] = struct{}{}
			categories[cat.Name] = struct{}{}
		}
	}
	return math.Min(1.0, c.cfg.TermWeight*float64(count))
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
