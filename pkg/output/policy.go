package output

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	documentPolicyOnce sync.Once
	documentPolicy     *bluemonday.Policy
)

// documentSanitizer returns the shared allow-list policy for generated
// document markup. Tags and attributes outside the list are stripped outright
// rather than escaped; the defense holds regardless of nesting depth or
// encoding tricks because bluemonday re-parses the markup.
func documentSanitizer() *bluemonday.Policy {
	documentPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()

		policy.AllowElements(
			"h1", "h2", "h3", "h4",
			"p", "br", "hr",
			"strong", "em", "code",
			"ul", "ol", "li", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
			"a",
		)
		policy.AllowAttrs("colspan", "rowspan", "align").OnElements("td", "th")
		policy.AllowAttrs("href", "title").OnElements("a")
		policy.AllowURLSchemes("http", "https")
		policy.RequireParseableURLs(true)

		documentPolicy = policy
	})
	return documentPolicy
}
