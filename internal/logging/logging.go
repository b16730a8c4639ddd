// Package logging configures leveled console logging.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds console logger configuration.
type Options struct {
	Level      string
	Format     string
	Timestamps bool
}

// New creates a logger writing to w. Unknown levels fall back to info
// and unknown formats to text.
func New(w io.Writer, opts Options) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = log.InfoLevel
	}

	var formatter log.Formatter
	switch strings.ToLower(opts.Format) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		formatter = log.TextFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.Timestamps,
		Prefix:          "todo",
	})
}
