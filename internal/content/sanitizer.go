package content

import (
	"net/url"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitization happens once, when rich content is saved. Rendering then
// serves the stored HTML verbatim, so the policy here is the single trust
// boundary for editor output.

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// editorPolicy builds the allow-list for editor HTML / Construit la liste blanche du HTML de l'éditeur
//
// Allowed: structural tags (p, br, h2, h3, ul, ol, li, blockquote, pre,
// code), emphasis (strong, em), links with https href only, images with
// https src and alt. Everything else, script and on* attributes included,
// is removed.
func editorPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()

		p.AllowElements(
			"p", "br", "h2", "h3", "ul", "ol", "li",
			"blockquote", "pre", "code",
			"strong", "em",
		)

		p.AllowAttrs("href").OnElements("a")
		p.AllowRelativeURLs(false)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		p.RequireNoReferrerOnLinks(true)

		p.AllowAttrs("src", "alt").OnElements("img")
		p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
			return true
		})

		policy = p
	})
	return policy
}

// Sanitize cleans rich HTML through the editor policy. Legacy token text is
// returned untouched, its markers carry no markup. Idempotent.
func Sanitize(s string) string {
	if !IsRichFormat(s) {
		return s
	}
	return editorPolicy().Sanitize(s)
}
