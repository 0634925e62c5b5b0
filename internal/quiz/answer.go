package quiz

import (
	"fmt"
	"strings"
)

// CorrectOptions returns the texts of the correct options in display order.
// Out-of-range indices are skipped.
func CorrectOptions(q Question) []string {
	out := make([]string, 0, len(q.CorrectIndices))
	for _, i := range q.CorrectIndices {
		if i >= 0 && i < len(q.Options) {
			out = append(out, q.Options[i])
		}
	}
	return out
}

// FormatAnswer renders q as plain text suitable for the clipboard.
func FormatAnswer(q Question) string {
	return fmt.Sprintf("Question: %s\n\nAnswer: %s\n\nExplanation: %s",
		q.Text,
		strings.Join(CorrectOptions(q), ", "),
		q.Explanation,
	)
}
