package publish

import (
	"context"
	"strings"

	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

// Resolver turns human-entered category slugs and tag names into upstream
// taxonomy term ids.
type Resolver struct {
	wp     *wordpress.Client
	logger *zap.Logger
}

func NewResolver(wp *wordpress.Client, logger *zap.Logger) *Resolver {
	return &Resolver{wp: wp, logger: logger}
}

// ResolveCategory looks up a category id by slug. Category resolution is
// read-only and best-effort: a missing category or a failed lookup yields 0
// and the submission proceeds uncategorized.
func (r *Resolver) ResolveCategory(ctx context.Context, slug string) int {
	if slug == "" {
		return 0
	}
	term, err := r.wp.CategoryBySlug(ctx, slug)
	if err != nil {
		r.logger.Warn("category lookup failed", zap.String("slug", slug), zap.Error(err))
		return 0
	}
	if term == nil {
		return 0
	}
	return term.ID
}

// ResolveOrCreateTags maps free-text tag names to term ids, creating terms the
// upstream does not know yet. Names are deduplicated case-insensitively before
// the pass, then processed strictly one at a time: the upstream has no atomic
// find-or-create, and issuing lookups concurrently would let two spellings of
// the same new tag race into duplicate terms.
//
// A failed lookup or create drops that one tag and continues; the skipped
// names are returned so the caller can report a partial result.
func (r *Resolver) ResolveOrCreateTags(ctx context.Context, names []string) (ids []int, skipped []string) {
	seenID := make(map[int]struct{})

	for _, name := range dedupeNames(names) {
		id, err := r.resolveOneTag(ctx, name)
		if err != nil {
			r.logger.Warn("tag dropped", zap.String("name", name), zap.Error(err))
			skipped = append(skipped, name)
			continue
		}
		if _, dup := seenID[id]; dup {
			continue
		}
		seenID[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, skipped
}

func (r *Resolver) resolveOneTag(ctx context.Context, name string) (int, error) {
	terms, err := r.wp.SearchTags(ctx, name)
	if err != nil {
		return 0, err
	}
	for _, term := range terms {
		if strings.EqualFold(term.Name, name) {
			return term.ID, nil
		}
	}
	term, err := r.wp.CreateTag(ctx, name)
	if err != nil {
		return 0, err
	}
	return term.ID, nil
}

// dedupeNames trims, drops empties and removes case-insensitive duplicates
// while preserving first-occurrence order. Entries may themselves be
// comma-separated user input.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(names))
	for _, raw := range names {
		for _, part := range strings.Split(raw, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
