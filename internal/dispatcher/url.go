package dispatcher

import "strings"

// resolveEndpoint joins a base URL and an optional path with exactly one
// slash between them: one trailing slash is stripped from the base and one
// leading slash is ensured on the path. An empty path returns the base
// unchanged. Resolution is purely string-based; malformed URLs are not
// detected here and surface at delivery time.
func resolveEndpoint(baseURL, path string) string {
	if path == "" {
		return baseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
