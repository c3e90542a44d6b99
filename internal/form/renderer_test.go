// internal/form/renderer_test.go
//
// Tests for the declarative field renderer and the stateless CSRF tokens.
//
// Run: go test ./internal/form -v

package form

import (
	"strings"
	"testing"
)

func TestRenderFields_WidgetPerKind(t *testing.T) {
	fields := []FieldSpec{
		{Name: "name", Label: "Name", Kind: KindText, MinLength: 2},
		{Name: "email", Label: "Email", Kind: KindEmail},
		{Name: "message", Label: "Message", Kind: KindTextarea, MinLength: 10, Rows: 6},
	}

	out, err := RenderFields(fields, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderFields: %v", err)
	}
	got := string(out)

	for _, want := range []string{
		`<input id="fld-name" name="name" type="text" minlength="2">`,
		`<input id="fld-email" name="email" type="email">`,
		`<textarea id="fld-message" name="message" minlength="10" rows="6">`,
		`<label for="fld-name">Name</label>`,
		`name="csrf_token"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestRenderFields_PrefillIsEscaped(t *testing.T) {
	fields := []FieldSpec{
		{Name: "name", Label: "Name", Kind: KindText},
		{Name: "message", Label: "Message", Kind: KindTextarea},
	}
	opts := RenderOptions{Prefill: map[string]string{
		"name":    `"><script>`,
		"message": "<b>hi</b>",
	}}

	out, err := RenderFields(fields, opts)
	if err != nil {
		t.Fatalf("RenderFields: %v", err)
	}
	got := string(out)

	if strings.Contains(got, "<script>") || strings.Contains(got, "<b>hi</b>") {
		t.Errorf("visitor input leaked unescaped:\n%s", got)
	}
	if !strings.Contains(got, "&lt;b&gt;hi&lt;/b&gt;") {
		t.Errorf("textarea prefill missing:\n%s", got)
	}
}

func TestRenderFields_ErrorMessageInline(t *testing.T) {
	fields := []FieldSpec{{Name: "email", Label: "Email", Kind: KindEmail}}
	opts := RenderOptions{Errors: map[string]string{"email": "Please enter a valid email address"}}

	out, err := RenderFields(fields, opts)
	if err != nil {
		t.Fatalf("RenderFields: %v", err)
	}
	want := `<span class="error" aria-live="polite">Please enter a valid email address</span>`
	if !strings.Contains(string(out), want) {
		t.Errorf("error slot missing message:\n%s", out)
	}
}

func TestRenderFields_UnknownKind(t *testing.T) {
	_, err := RenderFields([]FieldSpec{{Name: "x", Kind: "color"}}, RenderOptions{})
	if err == nil {
		t.Fatal("unknown kind must be an error, not silent markup")
	}
}

func TestRenderFields_EmbedsVerifiableToken(t *testing.T) {
	out, err := RenderFields([]FieldSpec{{Name: "name", Label: "Name", Kind: KindText}}, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderFields: %v", err)
	}

	const marker = `name="csrf_token" value="`
	got := string(out)
	start := strings.Index(got, marker)
	if start == -1 {
		t.Fatalf("hidden token input missing:\n%s", got)
	}
	rest := got[start+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end == -1 {
		t.Fatalf("unterminated token attribute:\n%s", got)
	}

	if !VerifyToken(rest[:end]) {
		t.Error("rendered form must carry a token the server will accept")
	}
}

func TestCSRFTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !VerifyToken(tok) {
		t.Error("freshly minted token must verify")
	}
	if VerifyToken(tok + "x") {
		t.Error("tampered token must not verify")
	}
	if VerifyToken("") {
		t.Error("empty token must not verify")
	}
}
