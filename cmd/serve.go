package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/quizgen"
	"github.com/abhisek/quizdeck/internal/ratelimit"
	"github.com/abhisek/quizdeck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		if dev, _ := cmd.Flags().GetBool("dev"); dev {
			cfg.Dev = true
		}
		if err := cfg.CheckAuthSecret(); err != nil {
			return err
		}
		if cfg.UsesDevSecret() {
			fmt.Fprintln(os.Stderr, "Dev mode: tokens are signed with the development secret.")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		deps := server.Deps{
			Config:   cfg,
			Auth:     auth.NewService(cfg.AuthSecret, cfg.TokenTTL),
			Quizzes:  st.QuizRepo(),
			Attempts: st.AttemptRepo(),
		}

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
		} else {
			deps.Pipeline = quizgen.NewPipeline(
				quizgen.New(provider, quizgen.DefaultConfig()),
				st.QuizRepo(), st.GenerationRepo(),
				ratelimit.New(st.GenerationRepo(), cfg.GenerationCooldown),
			)
		}

		return server.New(deps).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUIZDECK_HTTP_ADDR)")
	serveCmd.Flags().Bool("dev", false, "Allow the development auth secret (same as QUIZDECK_DEV=1)")
}
