// internal/contact/form.go
//
// Folio – Contact subsystem: form data model.
//
// Context
//   The contact page collects four free-text fields from a visitor.  Form
//   contents live in a Form value owned by one editing session; the sparse
//   Errors map mirrors the current validation state of that value.  Both
//   types are plain data so handlers, the submission controller, and tests
//   can pass them around without ceremony.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package contact

// Field identifies one input on the contact form.
type Field string

// The four fields of the contact form, in display order.
const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Fields lists every form field in display order.  Validation and rendering
// both iterate this slice so the two can never disagree about coverage.
var Fields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Form holds the raw visitor input for one editing session.  Values are kept
// exactly as typed; trimming happens inside the validator.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Value returns the raw value for f.  Unknown fields yield "".
func (fm *Form) Value(f Field) string {
	switch f {
	case FieldName:
		return fm.Name
	case FieldEmail:
		return fm.Email
	case FieldSubject:
		return fm.Subject
	case FieldMessage:
		return fm.Message
	}
	return ""
}

// SetValue stores a raw value for f.  Unknown fields are ignored.
func (fm *Form) SetValue(f Field, v string) {
	switch f {
	case FieldName:
		fm.Name = v
	case FieldEmail:
		fm.Email = v
	case FieldSubject:
		fm.Subject = v
	case FieldMessage:
		fm.Message = v
	}
}

// Reset clears every field back to the empty string.  Called after a
// successful submission.
func (fm *Form) Reset() { *fm = Form{} }

// Errors is a sparse map from field to user-facing message.  A key is present
// only while its field is invalid; an empty map means the form is valid.
type Errors map[Field]string

// Clone returns an independent copy so callers can hold a snapshot while the
// controller keeps mutating its own map.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
