// Package logger configures structured logging for docbridge. Everything
// goes to stderr: stdout carries MCP protocol traffic in serve mode and
// rendered Markdown in cat mode.
package logger

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

func New(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
}
