package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// URLPattern matches the first http(s) URL in free-form shared text.
var URLPattern = regexp.MustCompile(`https?://\S+`)

// TagPattern matches hashtags in free-form shared text.
var TagPattern = regexp.MustCompile(`#(\w+)`)

// trailingPunct is stripped from the end of an extracted URL; share text
// usually embeds URLs in sentences ("check this https://a.com/x, now").
const trailingPunct = ".,;:!?)"

// ExtractURL returns the first http(s) URL found in text, with trailing
// sentence punctuation stripped. Returns "" when text contains no URL.
func ExtractURL(text string) string {
	match := URLPattern.FindString(text)
	if match == "" {
		return ""
	}
	return strings.TrimRight(match, trailingPunct)
}

// ExtractTags returns hashtags found in text, lower-cased and without the
// leading '#', in order of appearance. Duplicates are not removed.
func ExtractTags(text string) []string {
	matches := TagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1]))
	}
	return tags
}

// RemoveURL removes the first literal occurrence of rawURL from text and
// collapses the whitespace gap the removal leaves behind.
func RemoveURL(text, rawURL string) string {
	if rawURL != "" {
		text = strings.Replace(text, rawURL, "", 1)
	}
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeTags lower-cases every tag in place and drops empty entries.
// Used on client-supplied tag lists, which don't go through ExtractTags.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	// Parse the URL
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	// Ensure host is present
	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// Truncate caps s at max bytes. Error details travel in JSON bodies and in
// redirect URLs, both of which have practical size limits.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
