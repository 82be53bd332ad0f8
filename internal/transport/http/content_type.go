package http

import (
	"mime"
	"regexp"
)

// textContentTypePatterns matches content types whose bodies are safe to dump
// as text: "text/*", JSON, and NDJSON.
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile(`^application/(x-nd)?json$`),
}

// isTextContentType checks if the given content type represents a text-based format.
func isTextContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if pattern.MatchString(mediaType) {
			return true
		}
	}

	return false
}
