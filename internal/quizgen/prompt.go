package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert exam creator. You will receive an exam document and must extract every multiple-choice question in it.

Rules:
- Copy each question and each answer option exactly as written. Do not rephrase, translate, correct, or reorder anything.
- Questions may be in English or Hebrew. Keep every question in its original language and script.
- Do not invent questions, options, or answers. Skip anything that is not a multiple-choice question.
- In these documents the correct answer is always the first option listed for each question. Keep that option first and report it in correct_indices. If the document explicitly marks additional correct options, include their indices too.
- correct_indices are 0-based positions into options.
- Write a brief explanation of why the correct answer is right, in the language of the question.
- Use the printed question number as id. If a question is not numbered, number it by its position starting at 1.
- Return only JSON. Do not wrap it in markdown.`

// buildUserMessage is the instruction sent alongside the attached document.
func buildUserMessage(input GenerateInput) string {
	var b strings.Builder
	b.WriteString("Extract all multiple-choice questions from the attached document.\n")
	if name := strings.TrimSpace(input.FileName); name != "" {
		fmt.Fprintf(&b, "File name: %s\n", name)
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		fmt.Fprintf(&b, "Exam title: %s\n", title)
	}
	b.WriteString(`Respond with an object of the form {"questions": [{"id", "chapter", "question", "options", "correct_indices", "explanation"}, ...]}.`)
	return b.String()
}
