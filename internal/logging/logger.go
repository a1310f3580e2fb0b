package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type Options struct {
	Level slog.Level
	// NoColor disables ANSI colors. Colors are also dropped when stdout is not a terminal.
	NoColor bool
}

func NewHandler(w io.Writer, opts Options) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    opts.NoColor,
	})
}

func InitLogger(opts Options) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		opts.NoColor = true
	}
	slog.SetDefault(slog.New(NewHandler(os.Stdout, opts)))
}
