// Package render compiles stored template text with resolved document variables.
//
// Undefined variables and attribute access on missing values render as empty
// strings, so partially populated profiles and proposals never fail a render.
package render

import (
	"embed"
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// Bundled template names.
const (
	DefaultResumeTemplate = "resume_default.html"
	ProjectSheetTemplate  = "project_sheet.html"
)

//go:embed templates/*.html
var bundled embed.FS

// Engine renders pongo2 (Django/Jinja-like) templates.
type Engine struct {
	set *pongo2.TemplateSet
}

// New returns an engine for user supplied templates. Tags that reach the
// filesystem are banned.
func New() *Engine {
	set := pongo2.NewSet("documents", pongo2.NewFSLoader(bundled))
	for _, tag := range []string{"include", "extends", "import", "ssi"} {
		_ = set.BanTag(tag)
	}
	return &Engine{set: set}
}

// Compile checks that source parses.
func (e *Engine) Compile(source string) error {
	_, err := e.set.FromString(source)
	if err != nil {
		return fmt.Errorf("compile template: %w", err)
	}
	return nil
}

// Render compiles source and executes it with vars. Nothing is cached.
func (e *Engine) Render(source string, vars map[string]any) (string, error) {
	tpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("compile template: %w", err)
	}
	out, err := tpl.Execute(pongo2.Context(vars))
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return out, nil
}

// Bundled returns the source of a template shipped with the binary.
func Bundled(name string) (string, error) {
	b, err := bundled.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("bundled template %q: %w", name, err)
	}
	return string(b), nil
}
