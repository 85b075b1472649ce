package wordpress

import (
	"bytes"
	"encoding/json"
)

// RenderedText decodes WordPress text fields that arrive either as a plain
// string ("Hello") or as a rendered object ({"rendered":"Hello","raw":"..."}).
// Create responses use the former, re-fetches the latter.
type RenderedText string

func (r *RenderedText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RenderedText(s)
		return nil
	}
	var obj struct {
		Rendered string `json:"rendered"`
		Raw      string `json:"raw"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Rendered != "" {
		*r = RenderedText(obj.Rendered)
	} else {
		*r = RenderedText(obj.Raw)
	}
	return nil
}

func (r RenderedText) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// String returns the decoded text.
func (r RenderedText) String() string { return string(r) }

// Term is a taxonomy term (category or tag) as the upstream CMS models it.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post is the upstream CMS's authoritative post representation.
type Post struct {
	ID         int          `json:"id"`
	Date       string       `json:"date,omitempty"`
	Modified   string       `json:"modified,omitempty"`
	Slug       string       `json:"slug,omitempty"`
	Status     string       `json:"status,omitempty"`
	Link       string       `json:"link,omitempty"`
	Title      RenderedText `json:"title"`
	Content    RenderedText `json:"content"`
	Excerpt    RenderedText `json:"excerpt"`
	Author     int          `json:"author,omitempty"`
	Categories []int        `json:"categories,omitempty"`
	Tags       []int        `json:"tags,omitempty"`
}

// PostPayload is the wire body for post create/update calls.
type PostPayload struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	Status     string `json:"status"`
	Categories []int  `json:"categories"`
	Tags       []int  `json:"tags"`
}

// MediaItem is a media library entry.
type MediaItem struct {
	ID        int          `json:"id"`
	Date      string       `json:"date,omitempty"`
	Slug      string       `json:"slug,omitempty"`
	Title     RenderedText `json:"title"`
	MediaType string       `json:"media_type,omitempty"`
	MimeType  string       `json:"mime_type,omitempty"`
	SourceURL string       `json:"source_url,omitempty"`
	AltText   string       `json:"alt_text,omitempty"`
}

// DeleteResult is the upstream response to a post deletion.
type DeleteResult struct {
	Deleted  bool  `json:"deleted"`
	Previous *Post `json:"previous,omitempty"`
}

// ListTotals carries the X-WP-Total / X-WP-TotalPages pagination headers.
type ListTotals struct {
	Total      int
	TotalPages int
}
