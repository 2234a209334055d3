package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// log levels, same numbering as zapcore.Level
const (
	DEBUG_LEVEL = iota - 1
	INFO_LEVEL
	WARN_LEVEL
	ERROR_LEVEL
	DPANIC_LEVEL
	PANIC_LEVEL
	FATAL_LEVEL
)

const (
	JSON_ENCODING    = "json"
	CONSOLE_ENCODING = "console"
)

type Configuration struct {
	Level      int
	TimeFormat string
	Encoding   string
}

// Validate reports every invalid field at once.
func (c *Configuration) Validate() error {
	var err error
	if c.Level < DEBUG_LEVEL || c.Level > FATAL_LEVEL {
		err = multierr.Append(err, fmt.Errorf("invalid LOG_LEVEL %d: must be between %d and %d", c.Level, DEBUG_LEVEL, FATAL_LEVEL))
	}
	if c.TimeFormat == "" {
		err = multierr.Append(err, fmt.Errorf("LOG_TIME_FORMAT must not be empty"))
	}
	if c.Encoding != JSON_ENCODING && c.Encoding != CONSOLE_ENCODING {
		err = multierr.Append(err, fmt.Errorf("invalid LOG_ENCODING %q: must be %q or %q", c.Encoding, JSON_ENCODING, CONSOLE_ENCODING))
	}
	return err
}
