package publish

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

// fakeUpstream is an in-memory WordPress REST API double. It keeps call
// counters so tests can assert on upstream traffic, not just results.
type fakeUpstream struct {
	t *testing.T

	mu         sync.Mutex
	categories []wordpress.Term
	tags       []wordpress.Term
	nextTagID  int

	tagSearches     int
	tagCreates      int
	categoryLookups int
	postCreates     int
	postUpdates     int
	postFetches     int

	inflightTags    int
	maxInflightTags int

	lastPayload wordpress.PostPayload

	createStatus   int    // 0 = 201
	createResponse string // raw JSON override for POST /posts
	failTagCreate  string // tag name whose creation 500s
	postByID       map[int]string

	server *httptest.Server
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{t: t, nextTagID: 100, postByID: map[int]string{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) client() *wordpress.Client {
	return wordpress.New(f.server.URL, 5*time.Second, zap.NewNop())
}

func (f *fakeUpstream) addCategory(id int, name, slug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append(f.categories, wordpress.Term{ID: id, Name: name, Slug: slug})
}

func (f *fakeUpstream) addTag(id int, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, wordpress.Term{ID: id, Name: name, Slug: strings.ToLower(name)})
}

func (f *fakeUpstream) totalRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tagSearches + f.tagCreates + f.categoryLookups + f.postCreates + f.postUpdates + f.postFetches
}

func (f *fakeUpstream) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/wp-json/wp/v2/categories":
		f.handleCategories(w, r)
	case r.URL.Path == "/wp-json/wp/v2/tags" && r.Method == http.MethodGet:
		f.handleTagSearch(w, r)
	case r.URL.Path == "/wp-json/wp/v2/tags" && r.Method == http.MethodPost:
		f.handleTagCreate(w, r)
	case r.URL.Path == "/wp-json/wp/v2/posts" && r.Method == http.MethodPost:
		f.handlePostCreate(w, r)
	case strings.HasPrefix(r.URL.Path, "/wp-json/wp/v2/posts/") && r.Method == http.MethodGet:
		f.handlePostFetch(w, r)
	case strings.HasPrefix(r.URL.Path, "/wp-json/wp/v2/posts/") && r.Method == http.MethodPut:
		f.handlePostUpdate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeUpstream) handleCategories(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.categoryLookups++
	slug := r.URL.Query().Get("slug")
	out := []wordpress.Term{}
	for _, term := range f.categories {
		if slug == "" || term.Slug == slug {
			out = append(out, term)
		}
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeUpstream) handleTagSearch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.tagSearches++
	f.inflightTags++
	if f.inflightTags > f.maxInflightTags {
		f.maxInflightTags = f.inflightTags
	}
	search := strings.ToLower(r.URL.Query().Get("search"))
	out := []wordpress.Term{}
	for _, term := range f.tags {
		if strings.Contains(strings.ToLower(term.Name), search) {
			out = append(out, term)
		}
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inflightTags--
		f.mu.Unlock()
	}()
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeUpstream) handleTagCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.tagCreates++
	if f.failTagCreate != "" && strings.EqualFold(body.Name, f.failTagCreate) {
		f.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"code": "term_error", "message": "boom"})
		return
	}
	term := wordpress.Term{ID: f.nextTagID, Name: body.Name, Slug: strings.ToLower(body.Name)}
	f.nextTagID++
	f.tags = append(f.tags, term)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, term)
}

func (f *fakeUpstream) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	var payload wordpress.PostPayload
	_ = json.NewDecoder(r.Body).Decode(&payload)

	f.mu.Lock()
	f.postCreates++
	f.lastPayload = payload
	status := f.createStatus
	raw := f.createResponse
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusCreated
	}
	if raw != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(raw))
		return
	}
	body, _ := json.Marshal(map[string]interface{}{
		"id":         42,
		"title":      payload.Title,
		"content":    payload.Content,
		"excerpt":    payload.Excerpt,
		"status":     payload.Status,
		"categories": payload.Categories,
		"tags":       payload.Tags,
	})
	f.mu.Lock()
	f.postByID[42] = string(body)
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (f *fakeUpstream) handlePostFetch(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2/posts/"))

	f.mu.Lock()
	f.postFetches++
	raw, ok := f.postByID[id]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"code": "rest_post_invalid_id", "message": "Invalid post ID."})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(raw))
}

func (f *fakeUpstream) handlePostUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2/posts/"))

	var payload wordpress.PostPayload
	_ = json.NewDecoder(r.Body).Decode(&payload)

	f.mu.Lock()
	f.postUpdates++
	f.lastPayload = payload
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":         id,
		"title":      payload.Title,
		"content":    payload.Content,
		"status":     payload.Status,
		"categories": payload.Categories,
		"tags":       payload.Tags,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
