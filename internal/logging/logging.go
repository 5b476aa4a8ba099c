// Package logging builds the zap logger used by the CLI.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style controls whether log levels are colored.
type Style string

const (
	StyleAuto   Style = "auto"
	StyleAlways Style = "always"
	StyleNever  Style = "never"
)

// Options configure New.
type Options struct {
	// Level is a zap level name; empty means info.
	Level string
	// Style is always, never or auto; empty means auto.
	Style string
	// Output receives the log lines; nil means stderr.
	Output zapcore.WriteSyncer
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// ParseStyle parses a style name.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleAuto:
		return StyleAuto, nil
	case StyleAlways:
		return StyleAlways, nil
	case StyleNever:
		return StyleNever, nil
	default:
		return "", fmt.Errorf("invalid log style %q (want always, never or auto)", s)
	}
}

// New builds a console logger writing to opts.Output.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	style, err := ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.StacktraceKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if useColor(style, out) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), out, level)
	return zap.New(core), nil
}

func useColor(style Style, out zapcore.WriteSyncer) bool {
	switch style {
	case StyleAlways:
		return true
	case StyleNever:
		return false
	}
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
