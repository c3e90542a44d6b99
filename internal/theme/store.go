// internal/theme/store.go
//
// Folio – Theme subsystem: display-preference store.
//
// Context
//   The site offers two display modes, light and dark.  One Store manages the
//   preference for one visitor: it reads the persisted value on first use,
//   mirrors it into an in-memory flag, and pushes it onto the page root as
//   exactly one of two mutually exclusive markers.  Persistence is behind the
//   Storage interface so the web layer can plug in a cookie while tests use a
//   map, and a storage failure is never fatal; the store falls back to its
//   in-memory value and simply skips the write.
//
// Workflow
//   •  Initialize: absent value → default dark, persist, apply.  Present
//      value → apply as-is without rewriting storage.
//   •  Toggle/Set: flip or assign, apply, persist.
//   •  apply is idempotent; re-applying the current preference is a no-op on
//      the root.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package theme

import "go.uber.org/zap"

// Preference is the persisted display mode.
type Preference string

// The two display modes.  Dark is the site default.
const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// StorageKey is the well-known key the preference is persisted under.
const StorageKey = "folio_theme"

// Valid reports whether p is one of the two known modes.
func (p Preference) Valid() bool { return p == Light || p == Dark }

// Storage persists a single key-value pair.  Get's second return is false
// when no value has been stored yet.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Root receives the applied preference.  Implementations set exactly one of
// two mutually exclusive markers on the page root.
type Root interface {
	ApplyTheme(dark bool)
}

// Store manages one visitor's preference.  Not safe for concurrent use; the
// web layer holds one Store per request.
type Store struct {
	storage Storage
	root    Root
	log     *zap.SugaredLogger

	isDark  bool
	applied bool // whether the root has seen any value yet
}

// NewStore wires the storage and root adapters.  log may be nil.
func NewStore(storage Storage, root Root, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.S()
	}
	return &Store{storage: storage, root: root, log: log}
}

// Initialize loads the persisted preference and applies it.  When nothing is
// persisted yet the default (dark) is applied and written back; when a value
// exists it is applied without touching storage.  Unreadable storage falls
// back to the default without persisting.
func (s *Store) Initialize() {
	raw, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		s.log.Warnw("theme storage unreadable, using default", "err", err)
		s.setDark(true, false)
		return
	}
	if !ok || !Preference(raw).Valid() {
		s.setDark(true, true) // first visit: persist the default
		return
	}
	s.setDark(Preference(raw) == Dark, false)
}

// Toggle flips the preference, applies it, and persists it.
func (s *Store) Toggle() { s.setDark(!s.isDark, true) }

// Set assigns the preference explicitly.  Unknown values are ignored.
func (s *Store) Set(p Preference) {
	if !p.Valid() {
		return
	}
	s.setDark(p == Dark, true)
}

// IsDark reports the in-memory flag.
func (s *Store) IsDark() bool { return s.isDark }

// Preference returns the current value as its persisted string form.
func (s *Store) Preference() Preference {
	if s.isDark {
		return Dark
	}
	return Light
}

// setDark applies and optionally persists.  Apply is skipped when the root
// already carries the requested marker.
func (s *Store) setDark(dark, persist bool) {
	if !s.applied || s.isDark != dark {
		s.root.ApplyTheme(dark)
		s.applied = true
	}
	s.isDark = dark

	if !persist {
		return
	}
	if err := s.storage.Set(StorageKey, string(s.Preference())); err != nil {
		// Non-fatal: the in-memory value still drives this page view.
		s.log.Warnw("theme preference not persisted", "err", err)
	}
}
