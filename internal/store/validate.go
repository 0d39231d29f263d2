package store

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/portalroom/internal/common"
)

const maxTags = 8

// NormalizeTags trims and lower-cases tags, drops empty and repeated ones
// and keeps at most eight, preserving first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, min(len(tags), maxTags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

// ParseTags splits a comma-separated tag string and normalizes it.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

func validateURL(raw string) error {
	if raw == "" {
		return common.ErrMissingURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return common.ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return common.ErrInvalidURL
	}
	return nil
}
