package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"textgend/internal/engine"
)

func generateCmd() *cobra.Command {
	var (
		modelPath string
		maxTokens int
		showMeta  bool
	)
	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "Generate text for a prompt and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if modelPath != "" {
				cfg.ModelPath = modelPath
			}
			if cfg.ModelPath == "" {
				return fmt.Errorf("no model path: pass --model or set model_path in the config file")
			}

			svc := buildService(cfg)
			defer svc.Cleanup()
			status, err := svc.Init(cfg.ModelPath)
			if err != nil {
				return err
			}
			if status == engine.StatusFallback {
				logger.Warn().Str("detail", svc.LoadDetail()).Msg("model unavailable, using pattern fallback")
			}

			prompt := strings.Join(args, " ")
			res, err := svc.GenerateText(context.Background(), prompt, maxTokens)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			if showMeta {
				fmt.Fprintf(cmd.ErrOrStderr(), "source=%s tokens=%d\n", res.Source, res.Tokens)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "model file to load")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "token budget (0 uses the default)")
	cmd.Flags().BoolVar(&showMeta, "meta", false, "print source and token count to stderr")
	return cmd
}
