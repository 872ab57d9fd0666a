package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Format uint8

const (
	ConsoleFormat Format = iota
	JSONFormat
)

var (
	Root    = zerolog.Nop()
	Store   = zerolog.Nop()
	Service = zerolog.Nop()
	Api     = zerolog.Nop()
)

type Options struct {
	Level  zerolog.Level
	Format Format
	Out    io.Writer // defaults to stdout
}

func ParseLogLevel(level string) (zerolog.Level, error) {
	return zerolog.ParseLevel(level)
}

func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(format) {
	case "", "console":
		return ConsoleFormat, nil
	case "json":
		return JSONFormat, nil
	}
	return ConsoleFormat, fmt.Errorf("unknown log format '%s', must be [console|json]", format)
}

func Init(opts Options) {

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	switch opts.Format {
	case ConsoleFormat:
		out = newConsoleWriter(out)
	}

	Root = zerolog.New(out).Level(opts.Level).
		With().Timestamp().Logger()
	Store = Root.With().Str("component", "store").Logger()
	Service = Root.With().Str("component", "service").Logger()
	Api = Root.With().Str("component", "api").Logger()
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}

	cw.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	cw.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("message: \"%s\" |", i)
	}

	cw.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("\"%s\": ", i)
	}

	cw.FormatFieldValue = func(i interface{}) string {
		return fmt.Sprintf("\"%s\" |", i)
	}

	cw.FormatErrFieldValue = func(i interface{}) string {
		return fmt.Sprintf(" %s |", i)
	}
	return cw
}
