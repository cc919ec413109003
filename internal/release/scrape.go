package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// maxPageBytes caps how much of the releases page the scraper reads.
const maxPageBytes = 4 << 20

// PageStrategy locates the asset by scanning the raw HTML of the public
// releases page. It is the last resort when the structured API query fails
// or the API shape changes; the download URL convention has been stable for
// far longer than the API response layout.
type PageStrategy struct {
	// BaseURL defaults to github.com; tests point it at a httptest server.
	BaseURL string
	// Repo is the "owner/name" repository whose releases page is scanned.
	Repo string
	// Pattern selects the Linux archive among the download links found.
	Pattern *regexp.Regexp
	// UserAgent is sent with the request.
	UserAgent string

	Client *http.Client
}

// Name identifies the strategy in progress output.
func (s *PageStrategy) Name() string {
	return "releases page scan"
}

// Available always reports true.
func (s *PageStrategy) Available() bool {
	return true
}

// Locate fetches the releases page and returns the first download link
// whose file name matches the asset pattern. The page lists releases
// newest-first, so the first occurrence is the newest matching asset.
func (s *PageStrategy) Locate(ctx context.Context) (string, error) {
	base := s.BaseURL
	if base == "" {
		base = "https://github.com"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/releases", base, s.Repo), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch releases page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read releases page: %w", err)
	}

	// Download links look like /{owner}/{repo}/releases/download/{tag}/{file},
	// absolute or relative depending on how the page was rendered.
	linkRe, err := regexp.Compile(
		`(?:https://github\.com)?/` + regexp.QuoteMeta(s.Repo) + `/releases/download/[^\s"'<>]+`)
	if err != nil {
		return "", fmt.Errorf("compile link pattern: %w", err)
	}

	for _, link := range linkRe.FindAllString(string(body), -1) {
		name := link[strings.LastIndex(link, "/")+1:]
		if !s.Pattern.MatchString(name) {
			continue
		}
		if strings.HasPrefix(link, "/") {
			link = "https://github.com" + link
		}
		return link, nil
	}

	return "", fmt.Errorf("no download link matching %s on releases page", s.Pattern)
}

func (s *PageStrategy) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}
