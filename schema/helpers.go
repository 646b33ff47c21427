package schema

import "strings"

// ExtensionOf derives the histogram category for a changed-file path:
// the lowercased substring after the last '.' of the final path segment.
// A segment without a dot (or ending in one) yields the NoExtension sentinel.
func ExtensionOf(path string) string {
	segment := path
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	dot := strings.LastIndex(segment, ".")
	if dot < 0 || dot == len(segment)-1 {
		return NoExtension
	}
	return strings.ToLower(segment[dot+1:])
}
