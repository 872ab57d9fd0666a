package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fulldump/biff"
	"github.com/rs/zerolog"
)

func TestInit_JSON(t *testing.T) {

	buf := &bytes.Buffer{}
	Init(Options{Level: zerolog.InfoLevel, Format: JSONFormat, Out: buf})

	Store.Debug().Msg("hidden")
	Store.Info().Str("key", "YES").Msg("visible")

	out := buf.String()
	biff.AssertFalse(strings.Contains(out, "hidden"))
	biff.AssertTrue(strings.Contains(out, `"component":"store"`))
	biff.AssertTrue(strings.Contains(out, `"key":"YES"`))
}

func TestInit_Console(t *testing.T) {

	buf := &bytes.Buffer{}
	Init(Options{Level: zerolog.DebugLevel, Format: ConsoleFormat, Out: buf})

	Api.Debug().Msg("hello")

	biff.AssertTrue(strings.Contains(buf.String(), `message: "hello"`))
	biff.AssertTrue(strings.Contains(buf.String(), "| DEBUG |"))
}

func TestParse(t *testing.T) {

	level, err := ParseLogLevel("warn")
	biff.AssertNil(err)
	biff.AssertEqual(level, zerolog.WarnLevel)

	format, err := ParseFormat("JSON")
	biff.AssertNil(err)
	biff.AssertEqual(format, JSONFormat)

	_, err = ParseFormat("xml")
	biff.AssertNotNil(err)
}
