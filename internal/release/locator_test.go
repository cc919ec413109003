package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/tessellate-audio/squelch-installer/internal/ui"
)

// fakeStrategy is a canned locator strategy for chain tests.
type fakeStrategy struct {
	name      string
	available bool
	url       string
	err       error
	attempted bool
}

func (s *fakeStrategy) Name() string    { return s.name }
func (s *fakeStrategy) Available() bool { return s.available }

func (s *fakeStrategy) Locate(ctx context.Context) (string, error) {
	s.attempted = true
	return s.url, s.err
}

func testReporter() *ui.Reporter {
	return ui.NewReporterTo(ui.Verbose, io.Discard, io.Discard)
}

func TestLocateFallsBackToNextStrategy(t *testing.T) {
	failing := &fakeStrategy{name: "api", available: true, err: fmt.Errorf("boom")}
	working := &fakeStrategy{name: "scrape", available: true, url: "https://example.com/a.tar.gz"}

	url, err := Locate(context.Background(), testReporter(), failing, working)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://example.com/a.tar.gz" {
		t.Errorf("got %q, want fallback strategy's URL", url)
	}
	if !failing.attempted {
		t.Error("first strategy should have been attempted")
	}
}

func TestLocateSkipsUnavailable(t *testing.T) {
	unavailable := &fakeStrategy{name: "api", available: false}
	working := &fakeStrategy{name: "scrape", available: true, url: "https://example.com/a.tar.gz"}

	url, err := Locate(context.Background(), testReporter(), unavailable, working)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://example.com/a.tar.gz" {
		t.Errorf("got %q, want available strategy's URL", url)
	}
	if unavailable.attempted {
		t.Error("unavailable strategy must not be attempted")
	}
}

func TestLocateExhaustedChain(t *testing.T) {
	a := &fakeStrategy{name: "api", available: true, err: fmt.Errorf("boom")}
	b := &fakeStrategy{name: "scrape", available: false}

	_, err := Locate(context.Background(), testReporter(), a, b)
	if !errors.Is(err, ErrNoAsset) {
		t.Fatalf("expected ErrNoAsset, got %v", err)
	}
}

func TestLocateFirstStrategyWins(t *testing.T) {
	first := &fakeStrategy{name: "api", available: true, url: "https://example.com/first.tar.gz"}
	second := &fakeStrategy{name: "scrape", available: true, url: "https://example.com/second.tar.gz"}

	url, err := Locate(context.Background(), testReporter(), first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://example.com/first.tar.gz" {
		t.Errorf("got %q, want first strategy's URL", url)
	}
	if second.attempted {
		t.Error("second strategy must not run when the first succeeds")
	}
}

func TestCompilePatternDefault(t *testing.T) {
	pattern, err := CompilePattern("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"squelch-1.4.2-linux-x86_64.tar.gz", true},
		{"squelch-1.4.2-Linux-aarch64.zip", true},
		{"squelch-1.4.2-linux.tgz", true},
		{"squelch-1.4.2-macos.zip", false},
		{"squelch-1.4.2-linux-x86_64.tar.gz.sha256", false},
	}
	for _, tt := range tests {
		if got := pattern.MatchString(tt.name); got != tt.want {
			t.Errorf("match(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCompilePatternInvalid(t *testing.T) {
	if _, err := CompilePattern("(["); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
