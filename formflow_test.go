package formflow

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplatesFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/templates.json": {Data: []byte(`{
			"forms": [
				{"id": "purchase_application", "label": "Purchase Application", "sections": []}
			]
		}`)},
	}

	templates, err := LoadTemplatesFS(context.Background(), fsys, "forms/templates.json")
	if err != nil {
		t.Fatalf("LoadTemplatesFS: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "purchase_application" {
		t.Fatalf("unexpected templates %+v", templates)
	}
}

func TestRenderResult(t *testing.T) {
	html, err := RenderResult(Result{Markdown: "**Approved** <script>alert(1)</script>"})
	if err != nil {
		t.Fatalf("RenderResult: %v", err)
	}
	if !strings.Contains(html, "<strong>Approved</strong>") {
		t.Fatalf("markdown not rendered: %s", html)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("unsafe markup survived: %s", html)
	}
}
