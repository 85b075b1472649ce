package publish

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedMediaCreatePrependsInOrder(t *testing.T) {
	refs := []MediaReference{
		{ID: "img1", Kind: MediaImage, URL: "https://cdn.example.com/a.jpg", DisplayName: "A photo"},
		{ID: "vid1", Kind: MediaVideo, URL: "https://cdn.example.com/b.mp4"},
	}

	got := EmbedMedia("", refs, EmbedCreate)

	wantImage := `<figure class="wp-block-image"><img src="https://cdn.example.com/a.jpg" alt="A photo" class="wp-image" /></figure>`
	wantVideo := `<figure class="wp-block-video"><video controls src="https://cdn.example.com/b.mp4" class="wp-video"></video></figure>`
	assert.Equal(t, wantImage+wantVideo, got)
	assert.True(t, strings.HasPrefix(got, wantImage), "image figure comes first")
}

func TestEmbedMediaCreatePrependsBeforeBody(t *testing.T) {
	refs := []MediaReference{{Kind: MediaImage, URL: "https://cdn.example.com/a.jpg", DisplayName: "A"}}

	got := EmbedMedia("<p>Hello</p>", refs, EmbedCreate)

	assert.True(t, strings.HasSuffix(got, "<p>Hello</p>"))
	assert.Contains(t, got, `wp-block-image`)
}

func TestEmbedMediaDefaultAltText(t *testing.T) {
	refs := []MediaReference{{Kind: MediaImage, URL: "https://cdn.example.com/a.jpg"}}

	got := EmbedMedia("", refs, EmbedCreate)

	assert.Contains(t, got, `alt="Uploaded image"`)
}

func TestEmbedMediaUpdateSkipsWhenFigurePresent(t *testing.T) {
	body := `<p>Intro</p><figure class="wp-block-image"><img src="old.jpg" alt="old" class="wp-image" /></figure>`
	refs := []MediaReference{{Kind: MediaImage, URL: "https://cdn.example.com/new.jpg", DisplayName: "New"}}

	// Known quirk: any existing figure markup suppresses insertion, even when
	// the new refs are unrelated to it.
	got := EmbedMedia(body, refs, EmbedUpdate)

	assert.Equal(t, body, got)
}

func TestEmbedMediaUpdatePrependsWhenNoFigures(t *testing.T) {
	body := "<p>Plain text body</p>"
	refs := []MediaReference{{Kind: MediaVideo, URL: "https://cdn.example.com/v.mp4"}}

	got := EmbedMedia(body, refs, EmbedUpdate)

	assert.True(t, strings.HasPrefix(got, `<figure class="wp-block-video">`))
	assert.True(t, strings.HasSuffix(got, body))
}

func TestEmbedMediaUnknownKindSkipped(t *testing.T) {
	refs := []MediaReference{
		{Kind: MediaKind("audio"), URL: "https://cdn.example.com/a.mp3"},
		{Kind: MediaImage, URL: "https://cdn.example.com/a.jpg", DisplayName: "A"},
	}

	got := EmbedMedia("x", refs, EmbedCreate)

	assert.NotContains(t, got, "a.mp3")
	assert.Contains(t, got, "a.jpg")
}

func TestEmbedMediaNoRefsLeavesBodyUntouched(t *testing.T) {
	assert.Equal(t, "<p>x</p>", EmbedMedia("<p>x</p>", nil, EmbedCreate))
}

func TestEmbedMediaEscapesAttributes(t *testing.T) {
	refs := []MediaReference{{Kind: MediaImage, URL: "https://cdn.example.com/a.jpg", DisplayName: `say "hi" <now>`}}

	got := EmbedMedia("", refs, EmbedCreate)

	assert.NotContains(t, got, `alt="say "hi"`)
	assert.Contains(t, got, "&#34;hi&#34;")
}
