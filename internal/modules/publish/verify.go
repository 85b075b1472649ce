package publish

import (
	"context"
	"strings"

	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

const (
	// WarningNotCreated flags a create response that carried no id.
	WarningNotCreated = "Post may not have been created properly"
	// WarningUnverified flags a create that could not be read back.
	WarningUnverified = "Could not verify the created post"
)

// Verifier re-fetches a just-created post and reconciles discrepancies. The
// upstream has been observed to accept writes without reflecting every field
// in its response; a read-after-write preferring the freshest copy is the only
// recovery available from the client side.
type Verifier struct {
	wp     *wordpress.Client
	logger *zap.Logger
}

func NewVerifier(wp *wordpress.Client, logger *zap.Logger) *Verifier {
	return &Verifier{wp: wp, logger: logger}
}

// Verify returns the post to hand back to the caller plus an advisory
// warning. It never fails: the already-completed write cannot be rolled back,
// so every outcome here degrades to "report and continue".
func (v *Verifier) Verify(ctx context.Context, token string, created *wordpress.Post) (*wordpress.Post, string) {
	if created.ID == 0 {
		// Nothing to re-fetch.
		return created, WarningNotCreated
	}

	fetched, err := v.wp.GetPost(ctx, token, created.ID)
	if err != nil {
		v.logger.Warn("post verification fetch failed", zap.Int("id", created.ID), zap.Error(err))
		return created, WarningUnverified
	}

	if titleEmpty(created) && !titleEmpty(fetched) {
		v.logger.Info("post reconciled from re-fetch", zap.Int("id", created.ID))
		return fetched, ""
	}
	return created, ""
}

func titleEmpty(p *wordpress.Post) bool {
	return strings.TrimSpace(p.Title.String()) == ""
}
