package main

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// promptData is the input to every prompt template.
type promptData struct {
	Day        int
	FirstDay   bool
	Anonymous  bool
	Alive      []string
	Dead       []string
	Candidates []string
}

// Prompts renders named prompt templates.
type Prompts struct {
	tmpl *template.Template
}

func loadPrompts() (*Prompts, error) {
	funcMap := template.FuncMap{
		"join": func(items []string, sep string) string { return strings.Join(items, sep) },
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(promptFS, "prompts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	return &Prompts{tmpl: tmpl}, nil
}

// Render executes the named template and trims the result.
func (p *Prompts) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
