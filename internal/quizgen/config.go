package quizgen

import "github.com/abhisek/quizdeck/internal/llm"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the model's reply. Exams with
	// long explanations need a large budget.
	MaxTokens int

	// Temperature is kept low so the model copies rather than paraphrases.
	Temperature float64

	// MaxDocumentBytes rejects oversized uploads before any LLM call.
	// Zero disables the check.
	MaxDocumentBytes int

	// AcceptedTypes lists the MIME types sent to the model.
	AcceptedTypes []string
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        32768,
		Temperature:      0.1,
		MaxDocumentBytes: 20 << 20,
		AcceptedTypes:    []string{llm.MIMETypePDF, llm.MIMETypePNG, llm.MIMETypeJPEG},
	}
}
