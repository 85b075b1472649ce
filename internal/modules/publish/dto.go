package publish

import (
	"fmt"
	"strings"
)

// PostDraft is the author's raw submission, pre-normalization. It lives for a
// single request and is discarded once the pipeline returns.
type PostDraft struct {
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Excerpt      string           `json:"excerpt"`
	Status       Status           `json:"status"`
	CategorySlug string           `json:"category"`
	TagNames     []string         `json:"tags"`
	Media        []MediaReference `json:"media"`
}

// ValidationError rejects a draft before any upstream call is made. The
// caller can fix the draft and resubmit.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Validate enforces the invariant that no draft with an empty title or body
// ever reaches the submitter.
func (d *PostDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(d.Content) == "" {
		return &ValidationError{Field: "content"}
	}
	return nil
}
