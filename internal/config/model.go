// internal/config/model.go
//
// Typed configuration model for Folio.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                         – dotenv values,
//   • `conf/folio.yaml`                       – primary static file,
//   • `FOLIO_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`; Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Site section
//

// Site carries the presentational identity of the portfolio.
type Site struct {
	Title string `koanf:"title" validate:"required"`
	Owner string `koanf:"owner"`
}

//
// Contact section
//

// Contact configures the contact form pipeline: where submissions are
// delivered, how long a result banner stays up, and where the owner is
// notified.  AdminToken guards the /api/submissions listing; store it in
// Vault (`vault:secret/folio#admin_token`) rather than the YAML file.
type Contact struct {
	Endpoint          string `koanf:"endpoint" validate:"required,url"`
	ClearAfterSeconds int    `koanf:"clear_after_seconds" validate:"gte=0"`
	NotifyEmail       string `koanf:"notify_email" validate:"omitempty,email"`
	NotifyWebhook     string `koanf:"notify_webhook" validate:"omitempty,url"`
	AdminToken        string `koanf:"admin_token"`
}

//
// Database section (optional archive)
//

// Database holds the MySQL DSN for the submission archive.  Empty means the
// archive is disabled and submissions are delivery-only.
type Database struct {
	DSN string `koanf:"dsn"`
}

//
// Geo section (optional)
//

// Geo points at a GeoLite2-City database.  Empty path disables geolocation;
// visitor metadata then carries an empty Geo block.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Sessions section
//

// Sessions bounds the in-memory form-session cache.
type Sessions struct {
	MaxEntries int `koanf:"max_entries" validate:"gte=0"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or FOLIO_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // FOLIO_ROOT or discovered parent
}

// Config is the root of the tree.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Site     Site     `koanf:"site"`
	Contact  Contact  `koanf:"contact"`
	Database Database `koanf:"database"`
	Geo      Geo      `koanf:"geo"`
	Sessions Sessions `koanf:"sessions"`
	Paths    Paths    `koanf:"-"`
}
