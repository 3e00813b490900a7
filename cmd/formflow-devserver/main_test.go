package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/schema"
)

func testServer(t *testing.T) *server {
	t.Helper()
	templates, err := formflow.LoadTemplatesFS(context.Background(), templateFS, "templates.json")
	if err != nil {
		t.Fatalf("load embedded templates: %v", err)
	}
	reg, issues := schema.NewRegistry(templates)
	if len(issues) != 0 {
		t.Fatalf("embedded templates have issues: %v", issues)
	}
	if reg.Len() == 0 {
		t.Fatal("no embedded templates")
	}
	return &server{registry: reg}
}

func TestHandleListTemplates(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.handleListTemplates(rec, httptest.NewRequest(http.MethodGet, "/form-templates", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Forms []schema.Template `json:"forms"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Forms) == 0 {
		t.Fatal("no forms listed")
	}
	if body.Forms[0].ID != "purchase_application" {
		t.Fatalf("first form = %q", body.Forms[0].ID)
	}
}

func TestHandleAsk(t *testing.T) {
	srv := testServer(t)
	payload := map[string]any{
		"form_type": "purchase_application",
		"question":  "Summarise the application",
		"form_data": map[string]any{
			"loan_amount": "720000",
			"lvr_percent": 84.71,
			"existing_debts": []any{
				map[string]any{"type": "Credit Card", "balance": "4500"},
			},
			"not_in_template": "extra",
		},
	}
	body, _ := json.Marshal(payload)

	rec := httptest.NewRecorder()
	srv.handleAsk(rec, httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		FormType string `json:"form_type"`
		Markdown string `json:"response_markdown"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FormType != "purchase_application" {
		t.Fatalf("form_type = %q", resp.FormType)
	}
	for _, fragment := range []string{"Loan Amount", "720000", "84.71", "Credit Card", "not_in_template"} {
		if !strings.Contains(resp.Markdown, fragment) {
			t.Fatalf("summary missing %q:\n%s", fragment, resp.Markdown)
		}
	}
}

func TestHandleAsk_UnknownFormType(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(map[string]any{"form_type": "missing_form"})

	rec := httptest.NewRecorder()
	srv.handleAsk(rec, httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSummarize_BooleanAndSuffix(t *testing.T) {
	template := schema.Template{
		ID:    "t",
		Label: "Test Form",
		Sections: []schema.Section{
			{Fields: []schema.Field{
				{Key: "has_credit_issues", Label: "Credit Issues", Kind: schema.FieldKindBoolean},
				{Key: "lvr_percent", Label: "LVR", Kind: schema.FieldKindCalculated, Suffix: "%",
					Formula: &schema.Formula{Kind: schema.FormulaKindRatio}},
			}},
		},
	}

	md := summarize(template, map[string]any{
		"has_credit_issues": true,
		"lvr_percent":       84.71,
	})
	if !strings.Contains(md, "Credit Issues: Yes") {
		t.Fatalf("boolean not rendered:\n%s", md)
	}
	if !strings.Contains(md, "LVR: 84.71%") {
		t.Fatalf("calculated suffix not rendered:\n%s", md)
	}
}
