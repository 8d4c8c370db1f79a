package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ids(ws []whisper.Whisper) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}

// --- decoding ---

const postsArray = `[
  {"id":"a","content":"first","date":"2026-01-01T10:00:00Z","published":true},
  {"id":"b","content":"draft","date":"2026-01-03T10:00:00Z","published":false},
  {"id":"c","content":"third","date":"2026-01-02T10:00:00Z","color":"sky","authorName":"jess"}
]`

func TestDecodePostsArray(t *testing.T) {
	ws, err := decodePosts([]byte(postsArray))
	if err != nil {
		t.Fatalf("decodePosts: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "a"}, ids(ws)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if ws[0].AuthorName != "jess" || ws[0].Color != "sky" {
		t.Errorf("fields not decoded: %+v", ws[0])
	}
}

func TestDecodePostsEnvelope(t *testing.T) {
	ws, err := decodePosts([]byte(`{"posts":` + postsArray + `}`))
	if err != nil {
		t.Fatalf("decodePosts: %v", err)
	}
	if len(ws) != 2 {
		t.Errorf("got %d whispers, want 2", len(ws))
	}
}

func TestDecodePostsErrors(t *testing.T) {
	for _, body := range []string{"", "   ", "[{", `{"posts": 3}`} {
		if _, err := decodePosts([]byte(body)); err == nil {
			t.Errorf("decodePosts(%q) succeeded, want error", body)
		}
	}
}

// --- HTTPSource ---

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(postsArray))
	}))
	defer srv.Close()

	src := NewHTTPSource(HTTPConfig{Endpoint: srv.URL + "/api/posts"}, srv.Client())
	ws, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "a"}, ids(ws)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if src.Name() != srv.URL+"/api/posts" {
		t.Errorf("Name = %q", src.Name())
	}
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(HTTPConfig{Endpoint: srv.URL}, srv.Client()).Fetch(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusServiceUnavailable {
		t.Errorf("Code = %d, want 503", se.Code)
	}
}

func TestHTTPSourceDefaults(t *testing.T) {
	src := NewHTTPSource(HTTPConfig{}, nil)
	if src.Name() != DefaultEndpoint {
		t.Errorf("Name = %q, want %q", src.Name(), DefaultEndpoint)
	}
	if src.client.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", src.client.Timeout)
	}
}

// --- FileSource ---

func TestFileSourceJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "posts.json")
	if err := os.WriteFile(jsonPath, []byte(postsArray), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "posts.yaml")
	doc := `
- id: x
  content: older
  date: 2026-01-01T00:00:00Z
- id: y
  content: newer
  date: 2026-02-01T00:00:00Z
  icon: moon
- id: z
  content: hidden
  date: 2026-03-01T00:00:00Z
  published: false
`
	if err := os.WriteFile(yamlPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	ws, err := NewFileSource(jsonPath, 0).Fetch(context.Background())
	if err != nil {
		t.Fatalf("json Fetch: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "a"}, ids(ws)); diff != "" {
		t.Errorf("json ids (-want +got):\n%s", diff)
	}

	ws, err = NewFileSource(yamlPath, 0).Fetch(context.Background())
	if err != nil {
		t.Fatalf("yaml Fetch: %v", err)
	}
	if diff := cmp.Diff([]string{"y", "x"}, ids(ws)); diff != "" {
		t.Errorf("yaml ids (-want +got):\n%s", diff)
	}
	if ws[0].Icon != "moon" {
		t.Errorf("Icon = %q, want moon", ws[0].Icon)
	}
}

func TestFileSourceYAMLEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.yml")
	doc := "posts:\n  - id: only\n    content: hi\n    date: 2026-01-01T00:00:00Z\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	ws, err := NewFileSource(path, 0).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(ws) != 1 || ws[0].ID != "only" {
		t.Errorf("got %v", ids(ws))
	}
}

func TestFileSourceMissing(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), 0).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// --- MockSource ---

func fixedClock() time.Time {
	return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
}

func TestMockSourceDeterministic(t *testing.T) {
	a, _ := NewMockSource(42, 5, 0, WithClock(fixedClock)).Fetch(context.Background())
	b, _ := NewMockSource(42, 5, 0, WithClock(fixedClock)).Fetch(context.Background())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different whispers (-a +b):\n%s", diff)
	}
	if len(a) != 5 {
		t.Fatalf("len = %d, want 5", len(a))
	}
	if _, err := whisper.NewStore(a); err != nil {
		t.Errorf("mock whispers do not form a valid store: %v", err)
	}
	for i := 1; i < len(a); i++ {
		if !a[i-1].Date.After(a[i].Date) {
			t.Errorf("whispers not newest first at %d", i)
		}
	}
}

func TestMockSourceGrowth(t *testing.T) {
	m := NewMockSource(7, 3, 0, WithClock(fixedClock), WithGrowth())
	first, _ := m.Fetch(context.Background())
	second, _ := m.Fetch(context.Background())
	if len(first) != 3 || len(second) != 4 {
		t.Fatalf("lens = %d, %d; want 3, 4", len(first), len(second))
	}
	if diff := cmp.Diff(ids(first), ids(second)[1:]); diff != "" {
		t.Errorf("growth reordered existing whispers:\n%s", diff)
	}
}

func TestMockSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMockSource(1, 1, 0).Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
