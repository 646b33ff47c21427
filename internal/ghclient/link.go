package ghclient

import "strings"

// ParseLinkHeader parses an HTTP Link header value into a rel→URL map.
// Each entry looks like `<https://...>; rel="next"`, comma-separated.
// Malformed entries are skipped; an absent or empty header yields an
// empty map.
func ParseLinkHeader(header string) map[string]string {
	links := make(map[string]string)
	if header == "" {
		return links
	}

	for entry := range strings.SplitSeq(header, ",") {
		parts := strings.Split(entry, ";")
		if len(parts) < 2 {
			continue
		}

		rawURL := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(rawURL, "<") || !strings.HasSuffix(rawURL, ">") {
			continue
		}
		target := strings.Trim(rawURL, "<>")

		// The rel parameter may not be the first one after the URL.
		for _, param := range parts[1:] {
			param = strings.TrimSpace(param)
			if !strings.HasPrefix(param, "rel=") {
				continue
			}
			rel := strings.Trim(strings.TrimPrefix(param, "rel="), `"`)
			if rel != "" {
				links[rel] = target
			}
			break
		}
	}

	return links
}
