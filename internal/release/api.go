package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

// TokenFromEnv returns the GitHub API token, if any. Unauthenticated
// requests work fine but are rate-limited aggressively.
func TokenFromEnv() string {
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

// apiRelease is the subset of the GitHub releases API response we care about.
type apiRelease struct {
	TagName    string     `json:"tag_name"`
	Draft      bool       `json:"draft"`
	Prerelease bool       `json:"prerelease"`
	Assets     []apiAsset `json:"assets"`
}

type apiAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// APIStrategy locates the asset through the GitHub releases API.
type APIStrategy struct {
	// BaseURL defaults to the public GitHub API; tests point it at a
	// httptest server.
	BaseURL string
	// Repo is the "owner/name" repository to query.
	Repo string
	// Pattern selects the Linux archive among a release's assets.
	Pattern *regexp.Regexp
	// ArchHint, when non-empty, prefers assets containing it (e.g.
	// "x86_64") over other pattern matches within the same release.
	ArchHint string
	// UserAgent is sent with every request.
	UserAgent string

	Client *http.Client
}

// Name identifies the strategy in progress output.
func (s *APIStrategy) Name() string {
	return "github api"
}

// Available always reports true: the native HTTP client needs no external
// tool. Kept for symmetry with the other fallback chains.
func (s *APIStrategy) Available() bool {
	return true
}

// Locate queries the releases listing and returns the download URL of the
// first matching asset in the API's own newest-first order. Draft releases
// are skipped; prereleases count, matching upstream's publication habits.
func (s *APIStrategy) Locate(ctx context.Context) (string, error) {
	base := s.BaseURL
	if base == "" {
		base = "https://api.github.com"
	}

	url := fmt.Sprintf("%s/repos/%s/releases?per_page=20", base, s.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", s.UserAgent)
	if tok := TokenFromEnv(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("query releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases query returned %d", resp.StatusCode)
	}

	var releases []apiRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return "", fmt.Errorf("decode releases: %w", err)
	}

	for _, rel := range releases {
		if rel.Draft {
			continue
		}
		if url := s.pickAsset(rel.Assets); url != "" {
			return url, nil
		}
	}

	return "", fmt.Errorf("no asset matching %s in %d releases", s.Pattern, len(releases))
}

// pickAsset returns the download URL of the best matching asset in one
// release, or an empty string. An arch-specific match beats a plain one.
func (s *APIStrategy) pickAsset(assets []apiAsset) string {
	fallback := ""
	for _, a := range assets {
		if !s.Pattern.MatchString(a.Name) {
			continue
		}
		if s.ArchHint != "" && strings.Contains(a.Name, s.ArchHint) {
			return a.BrowserDownloadURL
		}
		if fallback == "" {
			fallback = a.BrowserDownloadURL
		}
	}
	return fallback
}

func (s *APIStrategy) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}
