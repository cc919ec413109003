package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const releasesJSON = `[
  {
    "tag_name": "v1.5.0",
    "draft": true,
    "assets": [
      {"name": "squelch-1.5.0-linux-x86_64.tar.gz",
       "browser_download_url": "https://example.com/draft.tar.gz"}
    ]
  },
  {
    "tag_name": "v1.4.2",
    "assets": [
      {"name": "squelch-1.4.2-macos.zip",
       "browser_download_url": "https://example.com/macos.zip"},
      {"name": "squelch-1.4.2-linux-aarch64.tar.gz",
       "browser_download_url": "https://example.com/linux-aarch64.tar.gz"},
      {"name": "squelch-1.4.2-linux-x86_64.tar.gz",
       "browser_download_url": "https://example.com/linux-x86_64.tar.gz"}
    ]
  },
  {
    "tag_name": "v1.4.1",
    "assets": [
      {"name": "squelch-1.4.1-linux-x86_64.tar.gz",
       "browser_download_url": "https://example.com/old.tar.gz"}
    ]
  }
]`

func apiServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/tessellate-audio/squelch/releases" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func mustPattern(t *testing.T, override string) *APIStrategy {
	t.Helper()
	pattern, err := CompilePattern(override)
	if err != nil {
		t.Fatalf("compile pattern: %v", err)
	}
	return &APIStrategy{
		Repo:      "tessellate-audio/squelch",
		Pattern:   pattern,
		UserAgent: "test",
	}
}

func TestAPIStrategyPrefersArchMatch(t *testing.T) {
	server := apiServer(t, releasesJSON, http.StatusOK)
	defer server.Close()

	s := mustPattern(t, "")
	s.BaseURL = server.URL
	s.ArchHint = "aarch64"

	url, err := s.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://example.com/linux-aarch64.tar.gz" {
		t.Errorf("got %q, want the aarch64 asset", url)
	}
}

func TestAPIStrategySkipsDraftsTakesNewest(t *testing.T) {
	server := apiServer(t, releasesJSON, http.StatusOK)
	defer server.Close()

	s := mustPattern(t, "")
	s.BaseURL = server.URL

	url, err := s.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Draft v1.5.0 skipped; first matching asset of the newest published
	// release wins, not the older v1.4.1.
	if url != "https://example.com/linux-aarch64.tar.gz" {
		t.Errorf("got %q, want the first linux asset of v1.4.2", url)
	}
}

func TestAPIStrategyNoMatch(t *testing.T) {
	server := apiServer(t, `[{"tag_name":"v1.0.0","assets":[
		{"name":"squelch-1.0.0-windows.zip","browser_download_url":"https://example.com/win.zip"}]}]`,
		http.StatusOK)
	defer server.Close()

	s := mustPattern(t, "")
	s.BaseURL = server.URL

	if _, err := s.Locate(context.Background()); err == nil {
		t.Fatal("expected error when no asset matches")
	}
}

func TestAPIStrategyHTTPError(t *testing.T) {
	server := apiServer(t, `{"message":"rate limited"}`, http.StatusForbidden)
	defer server.Close()

	s := mustPattern(t, "")
	s.BaseURL = server.URL

	if _, err := s.Locate(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestAPIStrategyCustomPattern(t *testing.T) {
	server := apiServer(t, releasesJSON, http.StatusOK)
	defer server.Close()

	s := mustPattern(t, `x86_64\.tar\.gz$`)
	s.BaseURL = server.URL

	url, err := s.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://example.com/linux-x86_64.tar.gz" {
		t.Errorf("got %q, want the x86_64 asset", url)
	}
}
