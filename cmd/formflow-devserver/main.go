// Command formflow-devserver is a local stand-in for the generation service.
// It serves the embedded sample templates on /form-templates and answers /ask
// with a markdown summary of the submitted payload, so the CLI and controller
// can be exercised end to end without the real backend.
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/schema"
)

//go:embed templates.json
var templateFS embed.FS

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	templates, err := formflow.LoadTemplatesFS(context.Background(), templateFS, "templates.json")
	if err != nil {
		log.Fatalf("Failed to load embedded templates: %v", err)
	}
	reg, issues := schema.NewRegistry(templates)
	for _, issue := range issues {
		log.Printf("Skipping template: %v", issue)
	}
	if reg.Len() == 0 {
		log.Fatal("No usable embedded templates")
	}

	srv := &server{registry: reg}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/form-templates", srv.handleListTemplates)
	r.Post("/ask", srv.handleAsk)

	log.Printf("formflow devserver listening on %s", *addr)
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

type server struct {
	registry *schema.Registry
}

func (s *server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"forms": s.registry.Templates(),
	})
}

func (s *server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	template, err := s.registry.TemplateByID(req.FormType)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown form type %q", req.FormType))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"form_type":         req.FormType,
		"query":             req.Question,
		"response_markdown": summarize(template, req.FormData),
		"documents_used":    0,
		"documents":         []any{},
	})
}

type askRequest struct {
	FormType        string         `json:"form_type"`
	Question        string         `json:"question"`
	FormData        map[string]any `json:"form_data"`
	AdditionalNotes string         `json:"additional_notes"`
}
