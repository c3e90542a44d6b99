// internal/view/render.go
//
// Single-site view engine: template collection, func-map injection, and
// render helpers.
//
// Public helpers
// --------------
//   - New            – walk the template directory and parse one set.
//   - Render         – write rendered HTML to an http.ResponseWriter.
//   - RenderToString – return template.HTML (partials, e-mails).
//
// All *.html files under the template root are parsed as one set so
// sub-templates ({{ template "contact_form" . }}) work out-of-the-box.
// execName() chooses the best template to execute:
//   – If the set contains "<name>.html", we run that (file has no define).
//   – Else we fall back to "<name>" (root template defined via {{ define }}).
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
)

// Engine holds the parsed template set for the site.  Templates are parsed
// once at boot; a portfolio redeploys to change markup, so no hot reload.
type Engine struct {
	tpl *template.Template
}

// New parses every *.html under dir into one template set.
func New(dir string) (*Engine, error) {
	files, err := collectHTML(dir)
	if err != nil {
		return nil, err
	}

	tpl, err := template.New("folio").Funcs(funcMap()).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	return &Engine{tpl: tpl}, nil
}

// Render executes the named template and streams it to w with an HTML
// content type.
func (e *Engine) Render(w http.ResponseWriter, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.tpl.ExecuteTemplate(w, execName(e.tpl, name), data)
}

// RenderToString executes and returns HTML.  It mirrors Render, but writes to
// a buffer instead of w.
func (e *Engine) RenderToString(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.tpl.ExecuteTemplate(&buf, execName(e.tpl, name), data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

//
// helpers
//

// collectHTML walks rootDir recursively and returns a list of *.html paths in
// slash form so they can be fed straight into ParseFiles.
func collectHTML(rootDir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil { // propagate filesystem errors immediately
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// execName picks the template name to execute.
//
// Priority:
//  1. If the set has "<name>.html" (file-based template), run that.
//  2. Otherwise, fall back to "<name>" (root template defined in markup).
func execName(t *template.Template, name string) string {
	if tmpl := t.Lookup(name + ".html"); tmpl != nil {
		return name + ".html"
	}
	return name
}

// funcMap exposes the handful of helpers templates need.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"dict": dict,
		"safe": func(s string) template.HTML { return template.HTML(s) },
	}
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
