package quizgen

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/quiz"
)

// LLMGenerator implements Generator by attaching the document to a single
// LLM request.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate sends the document to the model and ingests its reply.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Result, error) {
	if len(input.Document) == 0 {
		return nil, generationError("document is empty", nil)
	}
	if g.config.MaxDocumentBytes > 0 && len(input.Document) > g.config.MaxDocumentBytes {
		return nil, generationError(fmt.Sprintf("document exceeds %d MB", g.config.MaxDocumentBytes>>20), nil)
	}
	if len(g.config.AcceptedTypes) > 0 && !slices.Contains(g.config.AcceptedTypes, input.MIMEType) {
		return nil, generationError(fmt.Sprintf("unsupported file type %q", input.MIMEType), nil)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGeneration)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: buildUserMessage(input),
			Attachments: []llm.Attachment{{
				MIMEType: input.MIMEType,
				Name:     input.FileName,
				Data:     input.Document,
			}},
		}},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, generationError("LLM request failed", err)
	}

	raw, err := ParseQuestions(resp.Content)
	if err != nil {
		return nil, generationError("could not read questions from the model reply", err)
	}

	accepted, rejected := quiz.Ingest(raw)
	if len(accepted) == 0 {
		return nil, generationError(fmt.Sprintf("no usable questions found (%d rejected)", len(rejected)), nil)
	}

	return &Result{Questions: accepted, Rejected: rejected}, nil
}
