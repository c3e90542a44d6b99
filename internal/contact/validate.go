// internal/contact/validate.go
//
// Folio – Contact subsystem: field validation.
//
// Context
//   Every rule here is a pure function from a raw string to an optional
//   user-facing message.  Rules run in a fixed order per field (required
//   first, then length or format), and the first failing rule wins.  The
//   aggregate ValidateForm collects one message per invalid field into a
//   sparse Errors map; an empty map means the whole form may be submitted.
//
// Workflow
//   •  ValidateField trims the value, then applies the field's rule chain.
//   •  ValidateForm runs ValidateField over all four fields and returns a
//      freshly built map, so callers swap their error state atomically and
//      never expose a partial update.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package contact

import (
	"regexp"
	"strings"
)

// Minimum lengths after trimming.  Email has a format rule instead.
const (
	minNameLen    = 2
	minSubjectLen = 3
	minMessageLen = 10
)

// emailPattern accepts the usual local@domain.tld shape.  It is deliberately
// loose; deliverability is the mail system's problem, not the form's.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateField applies the rule chain for f to value and returns the first
// failing rule's message, or "" when the value passes.  Whitespace-only input
// counts as empty.
func ValidateField(f Field, value string) string {
	v := strings.TrimSpace(value)

	switch f {
	case FieldName:
		if v == "" {
			return "Name is required"
		}
		if len(v) < minNameLen {
			return "Name must be at least 2 characters"
		}

	case FieldEmail:
		if v == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(v) {
			return "Please enter a valid email address"
		}

	case FieldSubject:
		if v == "" {
			return "Subject is required"
		}
		if len(v) < minSubjectLen {
			return "Subject must be at least 3 characters"
		}

	case FieldMessage:
		if v == "" {
			return "Message is required"
		}
		if len(v) < minMessageLen {
			return "Message must be at least 10 characters"
		}
	}

	return ""
}

// ValidateForm validates every field of fm and returns the sparse error map
// plus a single validity verdict.  The map contains exactly the invalid
// fields; valid means the map is empty.
func ValidateForm(fm *Form) (Errors, bool) {
	errs := make(Errors)
	for _, f := range Fields {
		if msg := ValidateField(f, fm.Value(f)); msg != "" {
			errs[f] = msg
		}
	}
	return errs, len(errs) == 0
}
