package main

import (
	"strings"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/classify"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

// ClassifierAdapter adapts the lexicon classifier to the processor interface
type ClassifierAdapter struct {
	classifier *classify.Classifier
}

// NewClassifierAdapter creates a new classifier adapter
func NewClassifierAdapter(classifier *classify.Classifier) *ClassifierAdapter {
	return &ClassifierAdapter{classifier: classifier}
}

// Classify implements the processor.Classifier interface, mapping the
// canonical post onto the classifier's weighted subject fields
func (a *ClassifierAdapter) Classify(post domain.CanonicalPost) (domain.ClassificationResult, error) {
	var tags []string
	for _, ref := range post.MediaRefs {
		if name := mediaName(ref.URL); name != "" {
			tags = append(tags, name)
		}
	}

	return a.classifier.Classify(classify.Subject{
		Title:  post.Title,
		Body:   post.BodyText,
		Tags:   tags,
		Author: post.Author,
	}), nil
}

// mediaName extracts the filename part of a media URL so lexicon terms in
// file names still contribute to the score
func mediaName(mediaURL string) string {
	trimmed := strings.SplitN(mediaURL, "?", 2)[0]
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return ""
}
