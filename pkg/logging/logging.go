// Package logging configures zerolog for sggit. Everything logs through
// GetLogger so each line carries the component that wrote it; the console
// gets a human readable stream on stderr and the state directory keeps an
// append-only JSON log of every run.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls Setup.
type Options struct {
	// Verbosity is the count of -v flags
	Verbosity int
	// Console defaults to os.Stderr
	Console io.Writer
	// LogFile defaults to paths.LogFilePath(); "-" disables the file
	LogFile string
}

// LevelFor maps the -v count to a level: warn, info, debug, then trace.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger for a -v count with the default
// console and log file.
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup installs the global logger. A log file that cannot be opened is
// reported on the console and otherwise ignored.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = paths.LogFilePath()
	}
	var fileErr error
	if logFile != "-" {
		var f *os.File
		if f, fileErr = openLogFile(logFile); fileErr == nil {
			writers = append(writers, f)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("log_file", logFile).Msg("Logger ready")
}

// GetLogger returns the global logger tagged with a component name.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create log directory for %s", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot open log file %s", path)
	}
	return f, nil
}
