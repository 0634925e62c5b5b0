package server

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
)

const msgSessionNotFound = "session not found"

type indexRequest struct {
	Index *int `json:"index"`
}

// POST /api/quizzes/{quizID}/sessions
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
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

	var rng *rand.Rand
	if s.newRand != nil {
		rng = s.newRand()
	}
	e, err := s.sessions.create(userID, rec.ID, quiz.Normalize(rec.Questions, rng))
	if errors.Is(err, session.ErrEmptyQuestionSet) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		respondInternal(w, "start session", err)
		return
	}

	var view session.View
	e.apply(s.now(), func(st *session.SessionState) { view = session.Snapshot(st) })
	respondJSON(w, http.StatusCreated, view)
}

// sessionFor resolves the path session for the caller, writing a 404 when
// it is missing.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*sessionEntry, bool) {
	e, ok := s.sessions.get(chi.URLParam(r, "sessionID"), auth.SubjectFromContext(r.Context()))
	if !ok {
		respondError(w, http.StatusNotFound, msgSessionNotFound)
		return nil, false
	}
	return e, true
}

// transition applies op to the path session and responds with the
// resulting view. Ignored operations still answer 200 with the unchanged
// view. The first completion of a run is stored as an attempt.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func(*session.SessionState) bool) {
	e, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	var view session.View
	e.apply(s.now(), func(st *session.SessionState) {
		before := st.Completed
		op(st)
		if !st.Completed {
			e.recorded = false
		} else if !before && !e.recorded {
			s.recordAttempt(r, e.owner, st)
			e.recorded = true
		}
		view = session.Snapshot(st)
	})
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) recordAttempt(r *http.Request, userID string, st *session.SessionState) {
	if s.attempts == nil {
		return
	}
	sum := session.BuildSummary(st)
	_, err := s.attempts.RecordAttempt(r.Context(), store.AttemptData{
		QuizID:      st.QuizID,
		UserID:      userID,
		Score:       sum.Score,
		Total:       sum.Total,
		Submissions: sum.Submissions,
		Duration:    sum.Duration,
		CompletedAt: st.EndTime,
	})
	if err != nil {
		log.Printf("record attempt for session %s: %v", st.SessionID, err)
	}
}

// GET /api/sessions/{sessionID}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(*session.SessionState) bool { return false })
}

// DELETE /api/sessions/{sessionID}
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "sessionID"), auth.SubjectFromContext(r.Context())) {
		respondError(w, http.StatusNotFound, msgSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeIndex reads {"index": n}; a missing index is a bad request.
func decodeIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		respondError(w, http.StatusBadRequest, "index required")
		return 0, false
	}
	return *req.Index, true
}

// POST /api/sessions/{sessionID}/toggle  {"index": n}
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	idx, ok := decodeIndex(w, r)
	if !ok {
		return
	}
	s.transition(w, r, func(st *session.SessionState) bool { return session.ToggleOption(st, idx) })
}

// POST /api/sessions/{sessionID}/jump  {"index": n}
func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	idx, ok := decodeIndex(w, r)
	if !ok {
		return
	}
	s.transition(w, r, func(st *session.SessionState) bool { return session.JumpTo(st, idx) })
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, session.Submit)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, session.Next)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, session.Restart)
}

// GET /api/sessions/{sessionID}/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	e, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	type summaryOut struct {
		*session.SessionSummary
		Message string `json:"message"`
	}
	var out summaryOut
	e.apply(s.now(), func(st *session.SessionState) {
		sum := session.BuildSummary(st)
		out = summaryOut{SessionSummary: sum, Message: sum.Message()}
	})
	respondJSON(w, http.StatusOK, out)
}

// GET /api/sessions/{sessionID}/copy
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	e, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	var text string
	e.apply(s.now(), func(st *session.SessionState) {
		if q := session.CurrentQuestion(st); q != nil {
			text = quiz.FormatAnswer(*q)
		}
	})
	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}
