package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/prompt"
	"github.com/goliatone/go-formflow/pkg/schema"
)

func main() {
	baseURL := flag.String("base-url", "", "generation service base URL (defaults to FORMFLOW_API_URL, then the local dev address)")
	templatesPath := flag.String("templates", "", "load templates from a local JSON/YAML file instead of the listing endpoint")
	templateID := flag.String("template", "", "template id to fill (prompted when empty)")
	output := flag.String("output", "", "write the sanitized HTML to this file (stdout if empty)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := formflow.NewClient(resolveBaseURL(*baseURL))
	ctrl, err := buildController(ctx, api, *templatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	for _, issue := range ctrl.SchemaIssues() {
		log.Printf("Skipping template: %v", issue)
	}
	if len(ctrl.Templates()) == 0 {
		log.Fatal("No usable templates available")
	}

	driver := prompt.NewSurveyDriver()

	id := *templateID
	if id == "" {
		id, err = chooseTemplate(ctx, driver, ctrl.Templates())
		if err != nil {
			log.Fatalf("Template selection failed: %v", err)
		}
	}
	if err := ctrl.SelectTemplate(id); err != nil {
		log.Fatalf("Cannot select template: %v", err)
	}

	filler := prompt.NewFiller(driver)
	if err := filler.Fill(ctx, ctrl); err != nil {
		log.Fatalf("Form entry aborted: %v", err)
	}

	if err := ctrl.Submit(ctx); err != nil {
		log.Fatalf("Submission failed: %s", ctrl.Message())
	}
	result := ctrl.Result()
	if result == nil {
		log.Fatal("Submission was cancelled before a result arrived")
	}

	html, err := formflow.RenderResult(*result)
	if err != nil {
		log.Fatalf("Failed to render result: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Document written to %s\n", *output)
		return
	}
	fmt.Println(html)
}

func resolveBaseURL(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return os.Getenv("FORMFLOW_API_URL")
}

func buildController(ctx context.Context, api controller.Service, templatesPath string) (*formflow.Controller, error) {
	if templatesPath == "" {
		ctrl := formflow.NewController(api)
		if err := ctrl.LoadTemplates(ctx); err != nil {
			return nil, err
		}
		return ctrl, nil
	}

	templates, err := formflow.LoadTemplates(ctx, schema.SourceFromFile(templatesPath))
	if err != nil {
		return nil, err
	}
	reg, issues := schema.NewRegistry(templates)
	for _, issue := range issues {
		log.Printf("Skipping template: %v", issue)
	}
	ctrl := formflow.NewController(api, controller.WithRegistry(reg))
	return ctrl, nil
}

func chooseTemplate(ctx context.Context, driver prompt.Driver, templates []schema.Template) (string, error) {
	labels := make([]string, len(templates))
	for i, t := range templates {
		labels[i] = t.Label
	}
	idx, err := driver.Select(ctx, prompt.SelectConfig{
		Message:      "Which form would you like to fill?",
		Options:      labels,
		DefaultIndex: 0,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(templates) {
		return "", fmt.Errorf("invalid template selection")
	}
	return templates[idx].ID, nil
}
