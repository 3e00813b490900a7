// Package output converts a generation result into an HTML string safe for
// direct injection. HTML responses are sanitized against a fixed tag and
// attribute allow-list; markdown responses are normalized, converted with
// GFM-compatible rules (tables, line breaks on single newlines), then pushed
// through the same policy. The package never renders markup outside the
// allow-list: offending tags and attributes are stripped, not escaped.
package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/unicode/norm"
)

// Render produces the sanitized HTML view of a generation result. An empty
// result renders to the empty string.
func Render(result Result) (string, error) {
	if result.HTML != "" {
		return sanitizeHTML(result.HTML), nil
	}

	markdown := result.Markdown
	if markdown == "" {
		markdown = result.Text
	}
	if markdown == "" {
		return "", nil
	}

	converted, err := markdownToHTML(normalizeText(markdown))
	if err != nil {
		return "", fmt.Errorf("output: convert markdown: %w", err)
	}
	return sanitizeHTML(converted), nil
}

func sanitizeHTML(markup string) string {
	return strings.TrimSpace(documentSanitizer().Sanitize(normalizeText(markup)))
}

var markdownConverter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

func markdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := markdownConverter.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// punctuationNormalizer folds typographic dashes and bullets the generation
// model tends to emit into plain hyphens so downstream display is consistent.
var punctuationNormalizer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"–", "-",
	"—", "-",
	"•", "-",
)

func normalizeText(text string) string {
	return punctuationNormalizer.Replace(norm.NFKC.String(text))
}
