package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Manage stored quizzes",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		list, err := st.QuizRepo().ListByOwner(cmd.Context(), currentUser(cmd))
		if err != nil {
			return fmt.Errorf("list quizzes: %w", err)
		}
		sample, err := quiz.Builtin()
		if err != nil {
			return err
		}
		list = append([]quiz.Summary{sample.Summarize()}, list...)

		fmt.Printf("%-36s  %-32s  %9s  %s\n", "ID", "Title", "Questions", "Created")
		fmt.Println(strings.Repeat("─", 100))
		for _, q := range list {
			created := "-"
			if q.ID != quiz.DefaultID {
				created = q.CreatedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("%-36s  %-32s  %9d  %s\n", q.ID, truncate(q.Title, 32), q.QuestionCount, created)
		}
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a quiz's questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rec, err := loadQuiz(cmd, st, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d questions)\n\n", rec.Title, len(rec.Questions))
		for i, q := range rec.Questions {
			if q.Chapter != "" {
				fmt.Printf("[%s]\n", q.Chapter)
			}
			fmt.Printf("%d. %s\n", i+1, q.Text)
			for j, opt := range q.Options {
				mark := " "
				if answers && q.IsCorrectIndex(j) {
					mark = "*"
				}
				fmt.Printf("  %s %c) %s\n", mark, 'A'+j, opt)
			}
			if answers && q.Explanation != "" {
				fmt.Printf("  Explanation: %s\n", q.Explanation)
			}
			fmt.Println()
		}
		return nil
	},
}

var quizRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a quiz",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[1])
		if title == "" {
			return errors.New("title must not be empty")
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if _, err := loadOwnedQuiz(cmd, st, args[0]); err != nil {
			return err
		}
		if err := st.QuizRepo().UpdateTitle(cmd.Context(), args[0], title); err != nil {
			return fmt.Errorf("rename quiz: %w", err)
		}
		fmt.Printf("Renamed to %q\n", title)
		return nil
	},
}

var quizDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a quiz and its attempt history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rec, err := loadOwnedQuiz(cmd, st, args[0])
		if err != nil {
			return err
		}
		if !yes && !confirm(os.Stdin, fmt.Sprintf("Delete %q?", rec.Title)) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := st.QuizRepo().Delete(cmd.Context(), rec.ID); err != nil {
			return fmt.Errorf("delete quiz: %w", err)
		}
		fmt.Printf("Deleted %q\n", rec.Title)
		return nil
	},
}

var quizExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a quiz as a portable JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rec, err := loadQuiz(cmd, st, args[0])
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		return quiz.Export(w, rec, time.Now())
	},
}

var quizImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a quiz from an exported JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		doc, rejected, err := quiz.Import(f)
		if err != nil {
			return err
		}
		if strings.TrimSpace(title) == "" {
			title = doc.Title
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		id, err := st.QuizRepo().Save(cmd.Context(), &quiz.Record{
			OwnerID:        currentUser(cmd),
			Title:          quiz.ResolveTitle(title, doc.SourceFileName),
			SourceFileName: doc.SourceFileName,
			Questions:      doc.Questions,
		})
		if err != nil {
			return fmt.Errorf("save quiz: %w", err)
		}

		fmt.Printf("Imported %d questions as %s\n", len(doc.Questions), id)
		for _, r := range rejected {
			fmt.Fprintf(os.Stderr, "  skipped #%d: %s\n", r.QuestionID, r.Reason)
		}
		return nil
	},
}

func init() {
	quizShowCmd.Flags().BoolP("answers", "a", false, "Mark correct options and show explanations")
	quizDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	quizExportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	quizImportCmd.Flags().StringP("title", "t", "", "Override the document title")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizShowCmd)
	quizCmd.AddCommand(quizRenameCmd)
	quizCmd.AddCommand(quizDeleteCmd)
	quizCmd.AddCommand(quizExportCmd)
	quizCmd.AddCommand(quizImportCmd)
}

// loadQuiz returns a quiz the current user may read.
func loadQuiz(cmd *cobra.Command, st *store.Store, id string) (*quiz.Record, error) {
	rec, err := store.LoadQuiz(cmd.Context(), st.QuizRepo(), id, currentUser(cmd))
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("quiz %s not found", id)
	}
	return rec, nil
}

// loadOwnedQuiz is loadQuiz for mutations; the sample quiz is read-only.
func loadOwnedQuiz(cmd *cobra.Command, st *store.Store, id string) (*quiz.Record, error) {
	if id == quiz.DefaultID {
		return nil, errors.New("the sample quiz cannot be changed")
	}
	return loadQuiz(cmd, st, id)
}

func confirm(in io.Reader, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
