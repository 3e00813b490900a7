package output

// DocumentRef identifies one retrieval document the generation collaborator
// consulted, carried opaquely for display.
type DocumentRef struct {
	Source string `json:"source,omitempty"`
	Title  string `json:"title,omitempty"`
	Page   int    `json:"page,omitempty"`
}

// Result is the generation collaborator's response: sanitized-ready HTML or
// markdown (HTML wins when both are present) plus display metadata. A result
// replaces any prior one; it is never mutated after receipt.
type Result struct {
	FormType      string        `json:"form_type,omitempty"`
	Query         string        `json:"query,omitempty"`
	Markdown      string        `json:"response_markdown,omitempty"`
	HTML          string        `json:"response_html,omitempty"`
	Text          string        `json:"response,omitempty"`
	DocumentsUsed int           `json:"documents_used,omitempty"`
	Documents     []DocumentRef `json:"documents,omitempty"`
}

// Empty reports whether the result carries no renderable content.
func (r Result) Empty() bool {
	return r.HTML == "" && r.Markdown == "" && r.Text == ""
}
