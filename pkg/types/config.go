package types

import "errors"

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Preferences are the user-facing settings read by the core on every call.
type Preferences struct {
	Separator string `json:"separator" yaml:"separator"`
	Precision int    `json:"precision" yaml:"precision"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
}

// Preference defaults.
const (
	DefaultSeparator = SeparatorNameSpaces
	DefaultPrecision = 3
	DefaultLogLevel  = "warn"

	// MaxPrecision bounds the number of fractional digits shown.
	MaxPrecision = 1000
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrPrecisionRange  = errors.New("precision out of range")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// Validate checks the preference values. An empty separator or log level is
// accepted and means the default.
func (p Preferences) Validate() error {
	if p.Separator != "" {
		if _, err := ParseSeparator(p.Separator); err != nil {
			return err
		}
	}
	if p.Precision < 0 || p.Precision > MaxPrecision {
		return ErrPrecisionRange
	}
	if p.LogLevel != "" && !knownLogLevels[p.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}

// SeparatorSetting returns the parsed separator, falling back to the
// default for an empty or unknown name.
func (p Preferences) SeparatorSetting() Separator {
	s, err := ParseSeparator(p.Separator)
	if err != nil {
		return SeparatorSpaces
	}
	return s
}
