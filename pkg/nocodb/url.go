package nocodb

import "strings"

// BuildURL joins path segments into a single slash-separated URL. Leading
// and trailing slashes are stripped from each segment and empty segments
// are dropped, so callers never produce duplicate slashes.
func BuildURL(parts ...string) string {
	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part == "" {
			continue
		}

		segments = append(segments, part)
	}

	return strings.Join(segments, "/")
}
