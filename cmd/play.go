package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/screens/play"
)

var playCmd = &cobra.Command{
	Use:   "play [quiz-id]",
	Short: "Play a quiz in the terminal",
	Long:  "Open the quiz picker, or jump straight into a quiz. Use \"default\" for the sample quiz.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quizID := ""
		if len(args) == 1 {
			quizID = args[0]
		}
		return runApp(cmd, quizID)
	},
}

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command, quizID string) error {
	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Deps: play.Deps{
			Quizzes:  st.QuizRepo(),
			Attempts: st.AttemptRepo(),
			UserID:   currentUser(cmd),
		},
		StartQuizID: quizID,
	})
}
