package webhook

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
)

// ValidationError names the offending field so callers can fix the request
// before redelivering
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Msg)
}

// ValidateEnvelope checks the structural shape of an inbound webhook body.
// Validation is all-or-nothing: one malformed item fails the whole request
// and the caller resubmits the full batch.
func ValidateEnvelope(env *domain.InboundEnvelope) error {
	if env == nil {
		return &ValidationError{Field: "envelope", Msg: "missing body"}
	}
	if env.Items == nil {
		return &ValidationError{Field: "items", Msg: "missing items array"}
	}

	for i, item := range env.Items {
		switch {
		case strings.TrimSpace(item.Title) == "":
			return &ValidationError{Field: fmt.Sprintf("items[%d].title", i), Msg: "required"}
		case strings.TrimSpace(item.Link) == "":
			return &ValidationError{Field: fmt.Sprintf("items[%d].link", i), Msg: "required"}
		case strings.TrimSpace(item.GUID) == "":
			return &ValidationError{Field: fmt.Sprintf("items[%d].guid", i), Msg: "required"}
		}
	}
	return nil
}

// ValidateManual checks the operator-entered fallback submission. The URL must
// be a valid https URL; an Instagram-style /p/<id>/ path is preferred for the
// post identifier but not required, the normalizer derives one either way.
func ValidateManual(sub *domain.ManualSubmission) error {
	if sub == nil {
		return &ValidationError{Field: "submission", Msg: "missing body"}
	}
	if strings.TrimSpace(sub.InstagramURL) == "" {
		return &ValidationError{Field: "instagram_url", Msg: "required"}
	}
	if strings.TrimSpace(sub.Caption) == "" {
		return &ValidationError{Field: "caption", Msg: "required"}
	}

	u, err := url.Parse(sub.InstagramURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return &ValidationError{Field: "instagram_url", Msg: "must be a valid https URL"}
	}
	return nil
}
