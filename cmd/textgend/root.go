package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"textgend/internal/config"
	"textgend/internal/engine"
	"textgend/internal/loader"
	"textgend/internal/service"
)

var (
	flagConfig   string
	flagLogLevel string

	logger zerolog.Logger
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textgend",
		Short: "On-device text generation daemon with offline fallback",
		Long: "textgend serves local text generation over HTTP. It loads a model file\n" +
			"when one is available and falls back to a built-in rule-based responder\n" +
			"when it is not, so generation always produces a reply.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(flagLogLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (.yaml, .json or .toml)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", envOr("TEXTGEND_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(generateCmd())
	return cmd
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadConfig reads the --config file when given; flag values override it.
func loadConfig() (config.Config, error) {
	if flagConfig == "" {
		return config.Config{}, nil
	}
	return config.Load(flagConfig)
}

// buildService assembles the service from config plus command flags.
func buildService(cfg config.Config) *service.Service {
	svc := service.New(service.Options{
		Engine: engine.Options{
			Params: loader.Params{
				ContextSize: cfg.ContextSize,
				BatchSize:   cfg.BatchSize,
				Threads:     cfg.Threads,
			},
			VocabPath: cfg.VocabPath,
			Logger:    &logger,
		},
		ModelsDir: cfg.ModelsDir,
		Logger:    &logger,
	})
	if cfg.Temperature != 0 {
		svc.SetTemperature(cfg.Temperature)
	}
	if cfg.TopK != 0 {
		svc.SetTopK(cfg.TopK)
	}
	if cfg.TopP != 0 {
		svc.SetTopP(cfg.TopP)
	}
	return svc
}
