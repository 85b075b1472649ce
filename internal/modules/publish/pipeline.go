package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

// Pipeline sequences the publishing steps:
// Validate → MapStatus → EmbedMedia → ResolveTerms → Submit → Verify.
// Status mapping runs before any upstream call so a bad status never
// generates taxonomy traffic.
//
// Failures before Submit abort the whole run. From Submit onward nothing is
// rolled back: the upstream write has happened, and the remaining steps only
// reconcile and report.
type Pipeline struct {
	resolver   *Resolver
	submitter  *Submitter
	verifier   *Verifier
	categories map[string]struct{}
	logger     *zap.Logger
}

// New builds a pipeline over the given upstream client. allowedCategories is
// the closed editorial category set; slugs outside it resolve to no category.
func New(wp *wordpress.Client, allowedCategories []string, logger *zap.Logger) *Pipeline {
	allowed := make(map[string]struct{}, len(allowedCategories))
	for _, slug := range allowedCategories {
		allowed[strings.ToLower(strings.TrimSpace(slug))] = struct{}{}
	}
	return &Pipeline{
		resolver:   NewResolver(wp, logger),
		submitter:  NewSubmitter(wp),
		verifier:   NewVerifier(wp, logger),
		categories: allowed,
		logger:     logger,
	}
}

// Result is what a pipeline run hands back to the caller.
type Result struct {
	Post        *wordpress.Post
	Warning     string
	SkippedTags []string
}

// Create runs the create flow. The draft's status defaults to draft.
func (p *Pipeline) Create(ctx context.Context, token string, draft *PostDraft) (*Result, error) {
	if draft.Status == "" {
		draft.Status = StatusDraft
	}
	np, skipped, err := p.normalize(ctx, draft, EmbedCreate)
	if err != nil {
		return nil, err
	}

	created, err := p.submitter.Create(ctx, token, *np)
	if err != nil {
		return nil, err
	}

	post, warning := p.verifier.Verify(ctx, token, created)
	return p.result(post, warning, skipped), nil
}

// Update runs the update flow against an existing upstream post. No
// verification pass: the update response has not shown the create path's
// missing-field behavior.
func (p *Pipeline) Update(ctx context.Context, token string, id int, draft *PostDraft) (*Result, error) {
	np, skipped, err := p.normalize(ctx, draft, EmbedUpdate)
	if err != nil {
		return nil, err
	}

	post, err := p.submitter.Update(ctx, token, id, *np)
	if err != nil {
		return nil, err
	}
	return p.result(post, "", skipped), nil
}

// normalize validates the draft and resolves it into the upstream payload.
// The category lookup and the sequential tag pass touch disjoint upstream
// collections, so they run concurrently with each other; tags within the pass
// stay strictly serialized (see Resolver).
func (p *Pipeline) normalize(ctx context.Context, draft *PostDraft, mode EmbedMode) (*NormalizedPost, []string, error) {
	if err := draft.Validate(); err != nil {
		return nil, nil, err
	}

	status, err := MapStatus(draft.Status)
	if err != nil {
		return nil, nil, err
	}

	body := EmbedMedia(draft.Content, draft.Media, mode)

	catCh := make(chan int, 1)
	go func() {
		catCh <- p.resolveCategory(ctx, draft.CategorySlug)
	}()

	tagIDs, skipped := p.resolver.ResolveOrCreateTags(ctx, draft.TagNames)
	categoryID := <-catCh

	var categoryIDs []int
	if categoryID > 0 {
		categoryIDs = []int{categoryID}
	}

	return &NormalizedPost{
		Title:       draft.Title,
		Body:        body,
		Excerpt:     draft.Excerpt,
		Status:      status,
		CategoryIDs: categoryIDs,
		TagIDs:      tagIDs,
	}, skipped, nil
}

func (p *Pipeline) resolveCategory(ctx context.Context, slug string) int {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return 0
	}
	if len(p.categories) > 0 {
		if _, ok := p.categories[strings.ToLower(slug)]; !ok {
			p.logger.Warn("category slug outside editorial set", zap.String("slug", slug))
			return 0
		}
	}
	return p.resolver.ResolveCategory(ctx, slug)
}

func (p *Pipeline) result(post *wordpress.Post, warning string, skipped []string) *Result {
	if len(skipped) > 0 {
		note := fmt.Sprintf("Some tags could not be resolved and were skipped: %s", strings.Join(skipped, ", "))
		if warning == "" {
			warning = note
		} else {
			warning = warning + "; " + note
		}
	}
	return &Result{Post: post, Warning: warning, SkippedTags: skipped}
}
