package report

import (
	"fmt"
	"net/url"
	"strings"
)

// BadgeInfo contains a generated shields.io badge URL and ready-to-paste
// markdown linking back to the project repository.
type BadgeInfo struct {
	URL      string
	Markdown string
}

// GenerateBadge builds a health badge keyed off cycle and oversized-module
// counts rather than a composite score: a project with neither is "clean",
// one with either is "needs attention", and one with both is "tangled".
func GenerateBadge(repoURL string, cycleCount, oversizedCount int) BadgeInfo {
	var label, color string
	switch {
	case cycleCount == 0 && oversizedCount == 0:
		label, color = "clean", "green"
	case cycleCount > 0 && oversizedCount > 0:
		label, color = "tangled", "red"
	default:
		label, color = "needs attention", "orange"
	}

	message := fmt.Sprintf("%s (%d cycles, %d oversized)", label, cycleCount, oversizedCount)
	encoded := encodeBadgeText(message)
	badgeURL := fmt.Sprintf("https://img.shields.io/badge/depviz-%s-%s", encoded, color)

	markdown := fmt.Sprintf("[![depviz](%s)](%s)", badgeURL, repoURL)

	return BadgeInfo{URL: badgeURL, Markdown: markdown}
}

func encodeBadgeText(s string) string {
	escaped := strings.ReplaceAll(s, "-", "--")
	return url.PathEscape(escaped)
}
