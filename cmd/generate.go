package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/quizgen"
	"github.com/abhisek/quizdeck/internal/ratelimit"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a quiz from a PDF or image",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("title", "t", "", "Quiz title (defaults to the file name)")
	generateCmd.Flags().Bool("no-cooldown", false, "Skip the per-user generation cooldown")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	noCooldown, _ := cmd.Flags().GetBool("no-cooldown")
	cfg := config.FromEnv()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if cfg.MaxUploadBytes > 0 && int64(len(data)) > cfg.MaxUploadBytes {
		return fmt.Errorf("file exceeds %d MB", cfg.MaxUploadBytes>>20)
	}
	mimeType := quizgen.DetectDocumentType(data)
	if mimeType == "" {
		return fmt.Errorf("%s: only PDF, PNG and JPEG files are supported", args[0])
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	var limiter *ratelimit.Policy
	if !noCooldown {
		limiter = ratelimit.New(st.GenerationRepo(), cfg.GenerationCooldown)
	}
	pipeline := quizgen.NewPipeline(
		quizgen.New(provider, quizgen.DefaultConfig()),
		st.QuizRepo(), st.GenerationRepo(), limiter,
	)

	fmt.Printf("Generating quiz from %s with %s...\n", filepath.Base(args[0]), provider.ModelID())
	out, err := pipeline.Run(ctx, currentUser(cmd), quizgen.GenerateInput{
		Document: data,
		MIMEType: mimeType,
		FileName: filepath.Base(args[0]),
		Title:    title,
	})
	var cooldown *ratelimit.CooldownError
	if errors.As(err, &cooldown) {
		return errors.New(cooldown.Error())
	}
	if err != nil {
		return err
	}

	fmt.Printf("Created %q (%d questions)\n", out.Title, out.Count)
	fmt.Printf("ID: %s\n", out.QuizID)
	if len(out.Rejected) > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d malformed questions:\n", len(out.Rejected))
		for _, r := range out.Rejected {
			fmt.Fprintf(os.Stderr, "  #%d: %s\n", r.QuestionID, r.Reason)
		}
	}
	fmt.Printf("\nPlay it with: quizdeck play %s\n", out.QuizID)
	return nil
}
