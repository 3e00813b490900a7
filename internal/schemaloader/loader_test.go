package schemaloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formflow/pkg/schema"
)

const jsonEnvelope = `{
  "forms": [
    {
      "id": "purchase_application",
      "label": "Purchase Application",
      "sections": [
        {
          "title": "Loan Details",
          "fields": [
            {"key": "loan_amount", "label": "Loan Amount (AUD)", "type": "number"},
            {
              "key": "lvr_percent",
              "label": "LVR (%)",
              "type": "calculated",
              "formula": {
                "type": "ratio",
                "numerator_fields": ["loan_amount"],
                "denominator_field": "property_value",
                "multiplier": 100
              }
            }
          ]
        }
      ]
    }
  ]
}`

func TestDecode_JSONEnvelope(t *testing.T) {
	templates, err := Decode([]byte(jsonEnvelope))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "purchase_application" {
		t.Fatalf("unexpected templates %+v", templates)
	}

	field, ok := templates[0].FieldByKey("lvr_percent")
	if !ok {
		t.Fatal("expected lvr_percent field")
	}
	if field.Kind != schema.FieldKindCalculated || field.Formula == nil {
		t.Fatalf("calculated field not decoded: %+v", field)
	}
	if field.Formula.Kind != schema.FormulaKindRatio {
		t.Fatalf("formula kind = %q", field.Formula.Kind)
	}
	if field.Formula.Multiplier == nil || *field.Formula.Multiplier != 100 {
		t.Fatalf("multiplier not decoded: %+v", field.Formula.Multiplier)
	}
}

func TestDecode_BareJSONList(t *testing.T) {
	doc := `[{"id": "refinance_application", "label": "Refinance", "sections": []}]`
	templates, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "refinance_application" {
		t.Fatalf("unexpected templates %+v", templates)
	}
}

func TestDecode_YAML(t *testing.T) {
	doc := strings.Join([]string{
		"forms:",
		"  - id: purchase_application",
		"    label: Purchase Application",
		"    sections:",
		"      - title: Loan Details",
		"        fields:",
		"          - key: loan_amount",
		"            label: Loan Amount",
		"            type: number",
	}, "\n")

	templates, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
	if _, ok := templates[0].FieldByKey("loan_amount"); !ok {
		t.Fatal("yaml fields not decoded")
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode([]byte("::: not a document :::")); err == nil {
		t.Fatal("expected decode failure")
	}
	if _, err := Decode(nil); err == nil {
		t.Fatal("expected empty-document failure")
	}
}

func TestLoader_LoadFromFS(t *testing.T) {
	files := fstest.MapFS{
		"templates.json": {Data: []byte(jsonEnvelope)},
	}
	loader := New(Options{FileSystem: files})

	templates, err := loader.Load(context.Background(), schema.SourceFromFS("templates.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
}

func TestLoader_LoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jsonEnvelope))
	}))
	defer srv.Close()

	loader := New(Options{HTTPClient: srv.Client()})
	templates, err := loader.Load(context.Background(), schema.SourceFromURL(srv.URL+"/form-templates"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
}

func TestLoader_URLDisabledWithoutClient(t *testing.T) {
	loader := New(Options{})
	if _, err := loader.Load(context.Background(), schema.SourceFromURL("http://localhost:8000/form-templates")); err == nil {
		t.Fatal("expected url loading to fail without an http client")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := New(Options{FileSystem: fstest.MapFS{"templates.json": {Data: []byte(jsonEnvelope)}}})
	if _, err := loader.Load(ctx, schema.SourceFromFS("templates.json")); err == nil {
		t.Fatal("expected cancelled load to fail")
	}
}
