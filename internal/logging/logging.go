package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const LevelTrace slog.Level = -8

func ParseLevel(lvl string) (slog.Level, error) {
	switch strings.ToUpper(lvl) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid level: %s", lvl)
	}
}

// New returns a text logger writing records at or above lvl to w.
func New(w io.Writer, lvl string) (*slog.Logger, error) {
	level, err := ParseLevel(lvl)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
