// Package template renders scenario artifacts from named templates.
// Built-in templates compile into the binary; a configured directory
// overrides them by file name so teams can reshape the generated
// scaffolding without rebuilding.
package template

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

//go:embed templates/*.tmpl
var builtinFS embed.FS

// Engine holds the parsed template set.
type Engine struct {
	templates map[string]*template.Template
}

// NewEngine loads the built-in templates and, when overrideDir names an
// existing directory, replaces built-ins with same-named .tmpl files from
// it. A missing override directory is not an error; the built-ins serve.
func NewEngine(overrideDir string) (*Engine, error) {
	e := &Engine{templates: make(map[string]*template.Template)}
	if err := e.loadBuiltins(); err != nil {
		return nil, err
	}
	if overrideDir != "" {
		if err := e.loadOverrides(overrideDir); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) loadBuiltins() error {
	entries, err := fs.ReadDir(builtinFS, "templates")
	if err != nil {
		return domain.NewError("template", "", "", "reading built-in templates", err)
	}
	for _, entry := range entries {
		content, err := fs.ReadFile(builtinFS, "templates/"+entry.Name())
		if err != nil {
			return domain.NewError("template", "", "",
				fmt.Sprintf("reading built-in template %q", entry.Name()), err)
		}
		if err := e.add(entry.Name(), string(content)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) loadOverrides(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return domain.NewError("template", "", "",
			fmt.Sprintf("reading template directory %q", dir), err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return domain.NewError("template", "", "",
				fmt.Sprintf("reading template file %q", entry.Name()), err)
		}
		if err := e.add(entry.Name(), string(content)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) add(fileName, content string) error {
	name := strings.TrimSuffix(fileName, ".tmpl")
	tmpl, err := template.New(name).Funcs(CustomFuncMap()).Parse(content)
	if err != nil {
		return domain.NewError("template", "", "",
			fmt.Sprintf("parsing template %q", fileName), err)
	}
	e.templates[name] = tmpl
	return nil
}

// Render executes the named template against data.
func (e *Engine) Render(name string, data any) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", domain.NewError("template", "", "",
			fmt.Sprintf("template %q not found (available: %s)", name, strings.Join(e.ListTemplates(), ", ")), nil)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", domain.NewError("template", "", "",
			fmt.Sprintf("executing template %q", name), err)
	}
	return buf.String(), nil
}

// RenderGoSource renders the named template and passes the result through
// go/format. On a format failure the unformatted output is returned
// alongside the error so the broken source can be inspected.
func (e *Engine) RenderGoSource(name string, data any) (string, error) {
	out, err := e.Render(name, data)
	if err != nil {
		return "", err
	}
	formatted, err := format.Source([]byte(out))
	if err != nil {
		return out, domain.NewError("template", "", "",
			fmt.Sprintf("code rendered from %q failed go/format validation", name), err)
	}
	return string(formatted), nil
}

// ListTemplates returns the loaded template names, sorted.
func (e *Engine) ListTemplates() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
