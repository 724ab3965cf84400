// Package content renders editorial text. Two formats coexist: the historical
// plain-text format with [img:url] markers, and the rich HTML format produced
// by the current editor. Rendering never guesses per fragment: a piece of
// content is one format or the other, HTML winning when both markers appear.
package content

import (
	"regexp"
	"strings"
)

var (
	// richTagRe matches an HTML start tag, the signature of rich content.
	richTagRe = regexp.MustCompile(`(?i)<[a-z][^>]*>`)
	// imageTokenRe matches a legacy inline image marker.
	imageTokenRe = regexp.MustCompile(`\[img:[^\]]+\]`)
	// anyTagRe strips markup for excerpts.
	anyTagRe = regexp.MustCompile(`<[^>]*>`)
	// spaceRe collapses whitespace runs, line breaks included.
	spaceRe = regexp.MustCompile(`\s+`)
)

// FragmentKind distinguishes text blocks from inline images / Distingue blocs de texte et images
type FragmentKind int

const (
	FragmentText FragmentKind = iota
	FragmentImage
)

// Fragment is one ordered piece of a legacy-format document.
type Fragment struct {
	Kind     FragmentKind
	Text     string // Set for FragmentText, line breaks preserved / Défini pour FragmentText, sauts de ligne conservés
	ImageURL string // Set for FragmentImage / Défini pour FragmentImage
}

// Rendered is the displayable form of a document: either trusted HTML or an
// ordered fragment list, never both.
type Rendered struct {
	Rich      bool
	HTML      string // Rich variant, verbatim (sanitized at authoring time)
	Fragments []Fragment
}

// IsRichFormat reports whether s is rich HTML. The test is the presence of an
// HTML start tag; a legacy [img:...] marker alone does not qualify.
func IsRichFormat(s string) bool {
	return richTagRe.MatchString(s)
}

// Render parses a document into its displayable form. Rich HTML passes
// through verbatim; legacy text is split on [img:url] markers into text and
// image fragments. Empty text fragments are dropped, a marker without its
// closing bracket stays plain text.
func Render(s string) Rendered {
	if IsRichFormat(s) {
		return Rendered{Rich: true, HTML: s}
	}

	var fragments []Fragment
	last := 0
	for _, loc := range imageTokenRe.FindAllStringIndex(s, -1) {
		if text := s[last:loc[0]]; text != "" {
			fragments = append(fragments, Fragment{Kind: FragmentText, Text: text})
		}
		token := s[loc[0]:loc[1]]
		url := token[len("[img:") : len(token)-1]
		fragments = append(fragments, Fragment{Kind: FragmentImage, ImageURL: url})
		last = loc[1]
	}
	if text := s[last:]; text != "" {
		fragments = append(fragments, Fragment{Kind: FragmentText, Text: text})
	}

	return Rendered{Fragments: fragments}
}

// Excerpt builds a plain-text preview: markup and image markers are removed,
// whitespace runs collapse to single spaces, and the result is trimmed. When
// maxChars is positive the text is cut on a rune boundary with an ellipsis.
func Excerpt(s string, maxChars int) string {
	plain := imageTokenRe.ReplaceAllString(s, " ")
	plain = anyTagRe.ReplaceAllString(plain, " ")
	plain = spaceRe.ReplaceAllString(plain, " ")
	plain = strings.TrimSpace(plain)

	if maxChars <= 0 {
		return plain
	}
	runes := []rune(plain)
	if len(runes) <= maxChars {
		return plain
	}
	return strings.TrimSpace(string(runes[:maxChars])) + "…"
}
