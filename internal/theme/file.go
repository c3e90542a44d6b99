// internal/theme/file.go
//
// Folio – Theme subsystem: file-backed storage and the render root.
//
// Context
//   FileStorage keeps the preference in a small key=value file so non-HTTP
//   embeddings (CLI previews, tests) get the same persistence semantics as
//   the cookie path.  MarkerRoot is the Root used by the web layer: it records
//   which of the two mutually exclusive markers the page root should carry,
//   and the view engine writes that marker into the <html> class attribute.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package theme

import (
	"bufio"
	"os"
	"strings"
)

// FileStorage persists key=value lines in a single flat file.
type FileStorage struct{ Path string }

// Get scans the file for key.  A missing file counts as "nothing stored".
func (f *FileStorage) Get(key string) (string, bool, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		k, v, ok := strings.Cut(sc.Text(), "=")
		if ok && k == key {
			return v, true, nil
		}
	}
	return "", false, sc.Err()
}

// Set rewrites the file with key updated or appended.  The file is small (a
// handful of preferences at most), so read-modify-write is fine.
func (f *FileStorage) Set(key, value string) error {
	lines := []string{}
	if raw, err := os.ReadFile(f.Path); err == nil {
		for _, ln := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
			if k, _, ok := strings.Cut(ln, "="); !ok || k != key {
				if ln != "" {
					lines = append(lines, ln)
				}
			}
		}
	}
	lines = append(lines, key+"="+value)
	return os.WriteFile(f.Path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// MarkerRoot records the applied mode for template rendering.  Exactly one of
// the two markers is active at any time.
type MarkerRoot struct{ dark bool }

// ApplyTheme implements Root.
func (m *MarkerRoot) ApplyTheme(dark bool) { m.dark = dark }

// Class returns the marker for the <html> class attribute: "dark" or "light".
func (m *MarkerRoot) Class() string {
	if m.dark {
		return "dark"
	}
	return "light"
}
