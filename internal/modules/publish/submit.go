package publish

import (
	"context"
	"strings"

	"github.com/renaspress/publisher/internal/wordpress"
)

// NormalizedPost is the fully resolved payload ready for the upstream write.
type NormalizedPost struct {
	Title       string
	Body        string
	Excerpt     string
	Status      string
	CategoryIDs []int
	TagIDs      []int
}

// Submitter composes and issues the authenticated create/update call, the
// only state-mutating step of the pipeline.
type Submitter struct {
	wp *wordpress.Client
}

func NewSubmitter(wp *wordpress.Client) *Submitter {
	return &Submitter{wp: wp}
}

// Create writes a new post upstream.
func (s *Submitter) Create(ctx context.Context, token string, np NormalizedPost) (*wordpress.Post, error) {
	return s.wp.CreatePost(ctx, token, payload(np))
}

// Update rewrites an existing post upstream.
func (s *Submitter) Update(ctx context.Context, token string, id int, np NormalizedPost) (*wordpress.Post, error) {
	return s.wp.UpdatePost(ctx, token, id, payload(np))
}

func payload(np NormalizedPost) wordpress.PostPayload {
	categories := np.CategoryIDs
	if categories == nil {
		categories = []int{}
	}
	tags := np.TagIDs
	if tags == nil {
		tags = []int{}
	}
	return wordpress.PostPayload{
		Title:      strings.TrimSpace(np.Title),
		Content:    strings.TrimSpace(np.Body),
		Excerpt:    strings.TrimSpace(np.Excerpt),
		Status:     np.Status,
		Categories: categories,
		Tags:       tags,
	}
}
