package county

import (
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	// DefaultSegmentDelimiter is the default path delimiter.
	DefaultSegmentDelimiter = "."
	// DefaultGranularity is the bucket width of counters built by the
	// catch-all factory.
	DefaultGranularity = Minute
	// DefaultLogLevel is the level of the logger built from Settings.
	DefaultLogLevel = "info"
)

// The Settings type is used to configure a Tree from environment
// variables.
type Settings struct {
	// Delimiter between path segments, a single character.
	SegmentDelimiter string `envconfig:"COUNTY_SEGMENT_DELIMITER" default:"."`
	// Bucket width of the counters built by the catch-all factory.
	DefaultGranularity Granularity `envconfig:"COUNTY_DEFAULT_GRANULARITY" default:"minute"`
	// Logrus level name.
	LogLevel string `envconfig:"COUNTY_LOG_LEVEL" default:"info"`
}

// GetSettings returns the Settings read from the environment.
func GetSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, errors.Wrap(err, "county settings")
	}
	if _, err := s.Delimiter(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// MustGetSettings is like GetSettings but panics on invalid values.
func MustGetSettings() Settings {
	s, err := GetSettings()
	if err != nil {
		panic(err)
	}
	return s
}

// Delimiter returns the segment delimiter as a rune.
func (s *Settings) Delimiter() (rune, error) {
	if utf8.RuneCountInString(s.SegmentDelimiter) != 1 {
		return 0, errors.Errorf("segment delimiter must be a single character: %q", s.SegmentDelimiter)
	}
	r, _ := utf8.DecodeRuneInString(s.SegmentDelimiter)
	return r, nil
}

// Logger returns a logrus logger at the configured level.
func (s *Settings) Logger() (Logger, error) {
	l, err := newLogger(s.LogLevel)
	return l, errors.Wrap(err, "county log level")
}
