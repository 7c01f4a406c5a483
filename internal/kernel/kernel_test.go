package kernel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func testFiles(base string) []File {
	return []File{
		{Name: "a.tls", URL: base + "/a.tls"},
		{Name: "b.tpc", URL: base + "/b.tpc"},
	}
}

func TestEnsureAllFetchesMissing(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte("payload for " + r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	st := New(dir).WithFiles(testFiles(srv.URL))

	statuses, err := st.EnsureAll(context.Background())
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if hits != 2 {
		t.Errorf("expected exactly one fetch per missing file, got %d requests", hits)
	}
	for _, s := range statuses {
		if !s.Fetched {
			t.Errorf("%s should have been fetched", s.Name)
		}
		if _, err := os.Stat(filepath.Join(dir, s.Name)); err != nil {
			t.Errorf("%s not present after ensure: %v", s.Name, err)
		}
	}
}

func TestEnsureAllSkipsPresent(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer srv.Close()

	dir := t.TempDir()
	for _, f := range testFiles(srv.URL) {
		if err := os.WriteFile(filepath.Join(dir, f.Name), []byte("cached"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	st := New(dir).WithFiles(testFiles(srv.URL))
	statuses, err := st.EnsureAll(context.Background())
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if hits != 0 {
		t.Errorf("expected zero network calls with all files present, got %d", hits)
	}
	for _, s := range statuses {
		if s.Fetched {
			t.Errorf("%s should have been reported as already present", s.Name)
		}
	}
}

func TestEnsureAllStoresUnmodified(t *testing.T) {
	body := []byte("exact bytes, not rewritten\r\nsecond line")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	st := New(dir).WithFiles([]File{{Name: "raw.vec", URL: srv.URL}})
	if _, err := st.EnsureAll(context.Background()); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "raw.vec"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(body) {
		t.Errorf("stored file differs from response body")
	}
}

func TestEnsureAllAbortsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	st := New(t.TempDir()).WithFiles([]File{{Name: "gone.bsp", URL: srv.URL}})
	if _, err := st.EnsureAll(context.Background()); err == nil {
		t.Fatal("expected error on 404")
	}
}

func TestRequiredSet(t *testing.T) {
	files := Required()
	if len(files) != 4 {
		t.Fatalf("expected 4 required kernels, got %d", len(files))
	}
	names := map[string]bool{}
	for _, f := range files {
		names[f.Name] = true
		if f.URL == "" {
			t.Errorf("%s has no source URL", f.Name)
		}
	}
	for _, want := range []string{LeapSecondsFile, PCKFile, PlanetaryFile, SpacecraftFile} {
		if !names[want] {
			t.Errorf("missing required kernel %s", want)
		}
	}
}
