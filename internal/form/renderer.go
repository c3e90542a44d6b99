// internal/form/renderer.go
//
// Folio – Forms subsystem: HTML renderer.
//
// Context
//   Given a []FieldSpec this file converts the declaration into safe,
//   accessible markup.  The renderer honours optional pre-fill values (a
//   re-rendered page keeps what the visitor typed), prints the field's
//   current validation message inline, injects a CSRF token hidden input,
//   and applies HTML5 validation attributes as client-side hints.
//
// Workflow
//   •  RenderFields writes each field via writeField, which switches on the
//      Kind discriminant: KindText and KindEmail share the <input> shape,
//      KindTextarea emits the multi-line widget.
//   •  A cryptographically strong CSRF token is generated via GenerateToken
//      (csrf.go) and embedded as a hidden <input>.
//   •  The caller receives the final HTML as template.HTML so the surrounding
//      template does not double-escape the markup.
//
// Style
//   Output HTML is deliberately plain – no framework classes – so the
//   stylesheet can style via element selectors or class hooks.  Each input
//   gets id="fld-{name}" and is wrapped in <div class="form-field">.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"
)

// RenderOptions bundles optional parameters influencing HTML output.
type RenderOptions struct {
	// Prefill provides initial field values keyed by field name.
	Prefill map[string]string
	// Errors provides current validation messages keyed by field name.
	Errors map[string]string
}

// RenderFields returns the markup for the given field list plus the hidden
// CSRF input.  The surrounding <form> element stays in the page template so
// action and method remain the handler's business.
func RenderFields(fields []FieldSpec, opts RenderOptions) (template.HTML, error) {
	var buf bytes.Buffer

	for i := range fields {
		if err := writeField(&buf, &fields[i], opts); err != nil {
			return "", err
		}
	}

	// A token the server cannot verify would turn the visitor's submit into
	// a silent 403, so an entropy failure aborts the render instead.
	token, err := GenerateToken()
	if err != nil {
		return "", fmt.Errorf("form: csrf token: %w", err)
	}
	buf.WriteString(fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`+"\n", token))
	return template.HTML(buf.String()), nil
}

// writeField emits HTML for an individual field into buf, applying prefill,
// error text, and validation attributes.  The Kind tag selects the widget.
func writeField(buf *bytes.Buffer, f *FieldSpec, opts RenderOptions) error {
	val := opts.Prefill[f.Name]
	errMsg := opts.Errors[f.Name]

	name := html.EscapeString(f.Name)
	idAttr := `id="fld-` + name + `"`
	nameAttr := `name="` + name + `"`

	buf.WriteString(`<div class="form-field">` + "\n")
	buf.WriteString(`<label for="fld-` + name + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	switch f.Kind {
	case KindText, KindEmail:
		buf.WriteString(`<input ` + idAttr + ` ` + nameAttr + ` type="` + string(f.Kind) + `"`)
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		if f.MinLength > 0 {
			buf.WriteString(` minlength="` + strconv.Itoa(f.MinLength) + `"`)
		}
		if val != "" {
			buf.WriteString(` value="` + html.EscapeString(val) + `"`)
		}
		buf.WriteString(`>` + "\n")

	case KindTextarea:
		buf.WriteString(`<textarea ` + idAttr + ` ` + nameAttr)
		if f.MinLength > 0 {
			buf.WriteString(` minlength="` + strconv.Itoa(f.MinLength) + `"`)
		}
		if f.Rows > 0 {
			buf.WriteString(` rows="` + strconv.Itoa(f.Rows) + `"`)
		}
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		buf.WriteString(`>`)
		if val != "" {
			buf.WriteString(html.EscapeString(val))
		}
		buf.WriteString(`</textarea>` + "\n")

	default:
		return fmt.Errorf("writeField: unsupported field kind %q in field %s", f.Kind, f.Name)
	}

	// Inline message slot; filled when the server re-renders with errors.
	buf.WriteString(`<span class="error" aria-live="polite">` + html.EscapeString(errMsg) + `</span>` + "\n")
	buf.WriteString(`</div>` + "\n")
	return nil
}
