package publish

import (
	"fmt"
	"html"
	"strings"
)

// MediaKind distinguishes the two embeddable media types.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaReference points at an already-uploaded media asset.
type MediaReference struct {
	ID          string    `json:"id"`
	Kind        MediaKind `json:"type"`
	URL         string    `json:"url"`
	DisplayName string    `json:"title"`
}

// EmbedMode selects the placement policy for media fragments.
type EmbedMode int

const (
	EmbedCreate EmbedMode = iota
	EmbedUpdate
)

const (
	figureImageMarker = `<figure class="wp-block-image">`
	figureVideoMarker = `<figure class="wp-block-video">`

	defaultAltText = "Uploaded image"
)

// EmbedMedia merges media fragments into the document body.
//
// On create, fragments are always prepended in input order. On update they are
// only prepended when the body contains no figure markup yet; the author is
// assumed to have placed media manually while editing. That heuristic can
// suppress genuinely new media when unrelated figures are present; it is kept
// as-is pending a product decision.
func EmbedMedia(body string, refs []MediaReference, mode EmbedMode) string {
	if len(refs) == 0 {
		return body
	}

	if mode == EmbedUpdate && hasFigureMarkup(body) {
		return body
	}

	var b strings.Builder
	for _, ref := range refs {
		b.WriteString(fragment(ref))
	}
	return b.String() + body
}

func hasFigureMarkup(body string) bool {
	return strings.Contains(body, figureImageMarker) || strings.Contains(body, figureVideoMarker)
}

func fragment(ref MediaReference) string {
	switch ref.Kind {
	case MediaImage:
		alt := ref.DisplayName
		if alt == "" {
			alt = defaultAltText
		}
		return fmt.Sprintf(`<figure class="wp-block-image"><img src="%s" alt="%s" class="wp-image" /></figure>`,
			html.EscapeString(ref.URL), html.EscapeString(alt))
	case MediaVideo:
		return fmt.Sprintf(`<figure class="wp-block-video"><video controls src="%s" class="wp-video"></video></figure>`,
			html.EscapeString(ref.URL))
	default:
		return ""
	}
}
