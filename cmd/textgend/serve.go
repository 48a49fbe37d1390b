package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"textgend/internal/common/fsutil"
	"textgend/internal/httpapi"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		modelPath string
		modelsDir string
		vocabPath string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if cfg.Addr == "" {
				cfg.Addr = ":8080"
			}
			if modelPath != "" {
				cfg.ModelPath = modelPath
			}
			if modelsDir != "" {
				cfg.ModelsDir = modelsDir
			}
			if vocabPath != "" {
				cfg.VocabPath = vocabPath
			}
			if cfg.ModelsDir != "" {
				if dir, err := fsutil.ExpandHome(cfg.ModelsDir); err == nil {
					cfg.ModelsDir = dir
				}
				if !fsutil.PathExists(cfg.ModelsDir) {
					logger.Warn().Str("dir", cfg.ModelsDir).Msg("models directory does not exist")
				}
			}

			httpapi.SetLogger(logger)
			httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
			httpapi.SetGenerateTimeoutSeconds(cfg.GenerateTimeoutSeconds)
			httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, cfg.CORSAllowedMethods, cfg.CORSAllowedHeaders)

			svc := buildService(cfg)
			if strings.TrimSpace(cfg.ModelPath) != "" {
				status, err := svc.Init(cfg.ModelPath)
				if err != nil {
					return err
				}
				logger.Info().Str("path", cfg.ModelPath).Str("status", string(status)).Msg("initial model load")
				httpapi.RecordModelLoad(string(status))
			}

			// Cancel in-flight generations on shutdown signals.
			baseCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			httpapi.SetBaseContext(baseCtx)

			srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(svc)}
			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("textgend listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-baseCtx.Done():
			}

			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutCtx); err != nil {
				logger.Warn().Err(err).Msg("graceful shutdown error")
			}
			svc.Cleanup()
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("TEXTGEND_ADDR", ""), "HTTP listen address, e.g. :8080")
	cmd.Flags().StringVar(&modelPath, "model", "", "model file to load at startup")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "directory to scan for model files")
	cmd.Flags().StringVar(&vocabPath, "vocab", "", "vocabulary file for the fallback tokenizer")
	return cmd
}
