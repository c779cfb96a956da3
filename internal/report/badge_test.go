package report

import (
	"strings"
	"testing"
)

func TestGenerateBadgeClean(t *testing.T) {
	b := GenerateBadge("https://example.com/repo", 0, 0)
	if !strings.Contains(b.URL, "green") {
		t.Fatalf("GenerateBadge(0,0) URL = %q, want green", b.URL)
	}
}

func TestGenerateBadgeTangled(t *testing.T) {
	b := GenerateBadge("https://example.com/repo", 2, 3)
	if !strings.Contains(b.URL, "red") {
		t.Fatalf("GenerateBadge(2,3) URL = %q, want red", b.URL)
	}
}

func TestGenerateBadgeNeedsAttention(t *testing.T) {
	b := GenerateBadge("https://example.com/repo", 1, 0)
	if !strings.Contains(b.URL, "orange") {
		t.Fatalf("GenerateBadge(1,0) URL = %q, want orange", b.URL)
	}
}

func TestEncodeBadgeTextEscapesDashes(t *testing.T) {
	got := encodeBadgeText("a-b")
	if !strings.Contains(got, "--") {
		t.Fatalf("encodeBadgeText(a-b) = %q, want escaped dash", got)
	}
}
