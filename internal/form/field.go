// internal/form/field.go
//
// Folio – Forms subsystem: field specifications.
//
// Context
//   A form is declared in code as a flat []FieldSpec.  Each spec carries a
//   Kind discriminant; the renderer selects the widget variant (single-line
//   <input> or multi-line <textarea>) from that tag, so swapping a field
//   between the two is a one-word change in the declaration.  MinLength is
//   mirrored into HTML5 attributes as a client-side hint; the authoritative
//   check lives in the server-side validator.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package form

// Kind discriminates the widget variant a field renders as.
type Kind string

// The supported widget variants.
const (
	KindText     Kind = "text"     // single-line <input type="text">
	KindEmail    Kind = "email"    // single-line <input type="email">
	KindTextarea Kind = "textarea" // multi-line <textarea>
)

// FieldSpec describes a single input control on a form.
type FieldSpec struct {
	Name        string // submission key, required
	Label       string // human-readable label, required
	Kind        Kind   // widget variant
	Placeholder string // optional placeholder text
	MinLength   int    // ≥ 0, 0 means unset; emitted as minlength=
	Rows        int    // textarea rows, 0 means the browser default
}
