package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/quizgen"
	"github.com/abhisek/quizdeck/internal/ratelimit"
	"github.com/abhisek/quizdeck/internal/store"
)

const msgQuizNotFound = "quiz not found"

// loadQuiz resolves a quiz the caller may read.
func (s *Server) loadQuiz(ctx context.Context, id, userID string) (*quiz.Record, error) {
	return store.LoadQuiz(ctx, s.quizzes, id, userID)
}

// POST /api/quizzes (multipart: file, title)
func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectFromContext(r.Context())
	if s.pipeline == nil {
		respondError(w, http.StatusServiceUnavailable, "quiz generation is not configured")
		return
	}

	limit := s.cfg.MaxUploadBytes
	if limit <= 0 {
		limit = 20 << 20
	}
	// Multipart framing needs some room beyond the file itself.
	bodyLimit := limit + (1 << 20)
	if r.ContentLength > bodyLimit {
		respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MB", limit>>20))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MB", limit>>20))
			return
		}
		respondError(w, http.StatusBadRequest, "multipart form required")
		return
	}

	f, hdr, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file required")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read file")
		return
	}
	if int64(len(data)) > limit {
		respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MB", limit>>20))
		return
	}

	mimeType := quizgen.DetectDocumentType(data)
	if mimeType == "" {
		respondError(w, http.StatusUnsupportedMediaType, "only PDF, PNG and JPEG files are supported")
		return
	}

	out, err := s.pipeline.Run(r.Context(), userID, quizgen.GenerateInput{
		Document: data,
		MIMEType: mimeType,
		FileName: hdr.Filename,
		Title:    r.FormValue("title"),
	})
	var cooldown *ratelimit.CooldownError
	switch {
	case errors.As(err, &cooldown):
		w.Header().Set("Retry-After", fmt.Sprint(int(cooldown.Wait.Seconds())+1))
		respondError(w, http.StatusTooManyRequests, cooldown.Error())
		return
	case errors.Is(err, quizgen.ErrGeneration):
		log.Printf("generate quiz for %s: %v", userID, err)
		respondError(w, http.StatusBadGateway, generationMessage(err))
		return
	case err != nil:
		log.Printf("generate quiz for %s: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"quiz_id":        out.QuizID,
		"title":          out.Title,
		"question_count": out.Count,
		"rejected":       out.Rejected,
	})
}

// generationMessage is the user-visible text for a failed generation.
func generationMessage(err error) string {
	var ge *quizgen.GenerationError
	if errors.As(err, &ge) {
		return "Failed to generate quiz: " + ge.Reason
	}
	return "Failed to generate quiz"
}

// GET /api/quizzes
func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectFromContext(r.Context())
	list, err := s.quizzes.ListByOwner(r.Context(), userID)
	if err != nil {
		respondInternal(w, "list quizzes", err)
		return
	}
	if list == nil {
		list = []quiz.Summary{}
	}
	respondJSON(w, http.StatusOK, list)
}

// GET /api/quizzes/{quizID}
func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectFromContext(r.Context())
	rec, err := s.loadQuiz(r.Context(), chi.URLParam(r, "quizID"), userID)
	if err != nil {
		respondInternal(w, "load quiz", err)
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, msgQuizNotFound)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// ownedQuiz resolves the path quiz for a mutation. The sample quiz is
// never mutable. It writes the error response itself and returns false.
func (s *Server) ownedQuiz(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "quizID")
	if id == quiz.DefaultID {
		respondError(w, http.StatusForbidden, "the sample quiz cannot be changed")
		return "", false
	}
	rec, err := s.loadQuiz(r.Context(), id, auth.SubjectFromContext(r.Context()))
	if err != nil {
		respondInternal(w, "load quiz", err)
		return "", false
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, msgQuizNotFound)
		return "", false
	}
	return id, true
}

// PATCH /api/quizzes/{quizID}  {"title": "..."}
func (s *Server) handleRenameQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "title required")
		return
	}
	id, ok := s.ownedQuiz(w, r)
	if !ok {
		return
	}
	if err := s.quizzes.UpdateTitle(r.Context(), id, strings.TrimSpace(req.Title)); err != nil {
		writeStoreError(w, "rename quiz", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/quizzes/{quizID}
func (s *Server) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ownedQuiz(w, r)
	if !ok {
		return
	}
	if err := s.quizzes.Delete(r.Context(), id); err != nil {
		writeStoreError(w, "delete quiz", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/quizzes/{quizID}/attempts?limit=n
func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectFromContext(r.Context())
	id := chi.URLParam(r, "quizID")
	rec, err := s.loadQuiz(r.Context(), id, userID)
	if err != nil {
		respondInternal(w, "load quiz", err)
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, msgQuizNotFound)
		return
	}

	limit := parseIntDefault(r.URL.Query().Get("limit"), 20)
	attempts, err := s.attempts.ListAttempts(r.Context(), id, userID, limit)
	if err != nil {
		respondInternal(w, "list attempts", err)
		return
	}

	type attemptOut struct {
		ID          string `json:"id"`
		Score       int    `json:"score"`
		Total       int    `json:"total"`
		Submissions int    `json:"submissions"`
		DurationMs  int64  `json:"duration_ms"`
		CompletedAt string `json:"completed_at"`
	}
	out := make([]attemptOut, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, attemptOut{
			ID:          a.ID,
			Score:       a.Score,
			Total:       a.Total,
			Submissions: a.Submissions,
			DurationMs:  a.Duration.Milliseconds(),
			CompletedAt: a.CompletedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func writeStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, msgQuizNotFound)
		return
	}
	respondInternal(w, op, err)
}
