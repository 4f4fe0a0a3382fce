package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxSlugLength bounds section slugs; the catalog uses short kebab-case slugs.
const maxSlugLength = 128

// slugRegex matches catalog slugs: lowercase letters, digits and single dashes.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug validates a section slug.
//
// Slugs end up in node ids ("section-<slug>") and navigation paths
// ("/domain/<slug>"), so anything that could break a path segment is rejected:
//   - No empty slugs
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
//   - Lowercase kebab-case only
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidSection, "section slug cannot be empty")
	}

	if len(slug) > maxSlugLength {
		return New(ErrCodeInvalidSection, "section slug too long (max %d characters)", maxSlugLength)
	}

	for _, r := range slug {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidSection, "section slug contains invalid characters: %q", slug)
		}
	}

	if strings.ContainsAny(slug, "/\\") || strings.Contains(slug, "..") {
		return New(ErrCodeInvalidSection, "section slug cannot contain path characters: %q", slug)
	}

	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidSection, "invalid section slug: %q", slug)
	}

	return nil
}

// ValidatePath validates a local file path given on the command line or in
// the config file (snapshot and graph files).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateMongoURI checks that a MongoDB connection string has a mongodb scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidConfig, "mongo URI cannot be empty")
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidConfig, "mongo URI must use mongodb:// or mongodb+srv:// scheme")
	}
	return nil
}
