package main

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func init() {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		return eris.ToString(err, true)
	}
}

// newLogger returns a console logger on w. Warnings and errors are shown by
// default, progress with --verbose, errors only with --quiet.
func newLogger(w io.Writer, flags *cliFlags, noColor bool) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: w, NoColor: noColor}
	writer.PartsOrder = []string{
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}

	level := zerolog.WarnLevel
	switch {
	case flags.quiet:
		level = zerolog.ErrorLevel
	case flags.verbose:
		level = zerolog.DebugLevel
	}

	return zerolog.New(writer).Level(level)
}
