package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/spacesedan/emotiflow/config"
	"github.com/spacesedan/emotiflow/internal/clients"
	"github.com/spacesedan/emotiflow/internal/logging"
)

func main() {
	baseURL := flag.String("url", clients.DEFAULT_BASE_URL, "base URL of the emotion server")
	text := flag.String("text", "", "text to analyze")
	selfTest := flag.Bool("selftest", false, "run the server's fixed self test instead of -text")
	timeout := flag.Duration("timeout", 60*time.Second, "per-request timeout")
	flag.Parse()

	config.LoadEnv(config.AppEnv())
	logging.InitLogger(logging.Options{Level: slog.LevelWarn})

	if !*selfTest && *text == "" {
		flag.Usage()
		os.Exit(2)
	}

	client := clients.NewEmotionClient(*baseURL, *timeout)
	ctx := context.Background()

	var (
		out any
		err error
	)
	if *selfTest {
		out, err = client.SelfTest(ctx)
	} else {
		out, err = client.Analyze(ctx, *text)
	}
	if err != nil {
		slog.Error("[Probe] Request failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		slog.Error("[Probe] Failed to write output", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
