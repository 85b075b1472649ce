package posts

import (
	"context"
	"strings"

	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

// Service proxies read and delete operations to the upstream CMS. The
// application holds no post data of its own.
type Service struct {
	wp     *wordpress.Client
	logger *zap.Logger
}

func NewService(wp *wordpress.Client, logger *zap.Logger) *Service {
	return &Service{wp: wp, logger: logger}
}

// ListParams carries the browsing filters accepted by the public listing.
type ListParams struct {
	Page         int
	PerPage      int
	CategorySlug string
	Search       string
}

// List fetches a page of published posts. A category filter arrives as a slug
// and is resolved against the upstream first; an unknown slug matches nothing
// rather than failing the request.
func (s *Service) List(ctx context.Context, p ListParams) ([]wordpress.Post, wordpress.ListTotals, error) {
	lq := wordpress.ListQuery{Page: p.Page, PerPage: p.PerPage, Search: strings.TrimSpace(p.Search)}

	if slug := strings.TrimSpace(p.CategorySlug); slug != "" {
		term, err := s.wp.CategoryBySlug(ctx, slug)
		if err != nil {
			return nil, wordpress.ListTotals{}, err
		}
		if term == nil {
			s.logger.Debug("listing filtered by unknown category", zap.String("slug", slug))
			return []wordpress.Post{}, wordpress.ListTotals{}, nil
		}
		lq.Category = term.ID
	}

	posts, totals, err := s.wp.ListPosts(ctx, lq)
	if err != nil {
		return nil, wordpress.ListTotals{}, err
	}
	return posts, totals, nil
}

// UserPosts fetches the authenticated author's own posts, drafts included.
func (s *Service) UserPosts(ctx context.Context, token string, page, perPage int, status string) ([]wordpress.Post, wordpress.ListTotals, error) {
	return s.wp.UserPosts(ctx, token, page, perPage, status)
}

// Get fetches a single post by id.
func (s *Service) Get(ctx context.Context, token string, id int) (*wordpress.Post, error) {
	return s.wp.GetPost(ctx, token, id)
}

// Delete removes a post. force skips the upstream trash and deletes outright.
func (s *Service) Delete(ctx context.Context, token string, id int, force bool) (*wordpress.DeleteResult, error) {
	result, err := s.wp.DeletePost(ctx, token, id, force)
	if err != nil {
		return nil, err
	}
	s.logger.Info("post deleted", zap.Int("id", id), zap.Bool("force", force))
	return result, nil
}
