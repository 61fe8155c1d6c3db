// Package mockapi is a local stand-in for a candidate service. It accepts a
// submission, reports "processing" for a configurable number of polls and then
// answers "done" with one fact per submitted document.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"sync"

	"assignment-validator/internal/application/port/output"
	"assignment-validator/internal/domain/entity"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

type Config struct {
	ReadyAfter     int
	RequestLogging bool
	Logger         output.LoggerPort
}

func DefaultConfig() Config {
	return Config{
		ReadyAfter:     3,
		RequestLogging: true,
	}
}

type Server struct {
	readyAfter     int
	requestLogging bool
	logger         output.LoggerPort

	mu         sync.Mutex
	submission *entity.Submission
	polls      int
}

func NewServer(cfg Config) *Server {
	if cfg.ReadyAfter < 0 {
		cfg.ReadyAfter = 0
	}
	return &Server{
		readyAfter:     cfg.ReadyAfter,
		requestLogging: cfg.RequestLogging,
		logger:         cfg.Logger,
	}
}

// Router wires the two endpoints behind chi. Request logging goes through
// httplog when enabled.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	if s.requestLogging {
		r.Use(httplog.RequestLogger(httplog.NewLogger("mockapi", httplog.Options{JSON: true})))
	}
	r.Use(middleware.Recoverer)

	r.Post("/submit_question_and_documents", s.handleSubmit)
	r.Get("/get_question_and_facts", s.handleGetFacts)

	return r
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub entity.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid submission: %v", err)})
		return
	}

	s.mu.Lock()
	s.submission = &sub
	s.polls = 0
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("Submission received",
			"question", sub.Question,
			"documents", len(sub.Documents),
			"autoApprove", sub.AutoApprove,
			"requestID", r.Header.Get("X-Request-ID"))
	}

	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) handleGetFacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.poll())
}

func (s *Server) poll() entity.QuestionAndFacts {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submission == nil {
		return entity.QuestionAndFacts{Status: entity.FactsStatusIdle}
	}

	s.polls++
	if s.polls <= s.readyAfter {
		return entity.QuestionAndFacts{
			Question: s.submission.Question,
			Status:   entity.FactsStatusProcessing,
		}
	}

	return entity.QuestionAndFacts{
		Question: s.submission.Question,
		Facts:    factsFor(*s.submission),
		Status:   entity.FactsStatusDone,
	}
}

func factsFor(sub entity.Submission) []string {
	facts := make([]string, 0, len(sub.Documents))
	for _, doc := range sub.Documents {
		facts = append(facts, fmt.Sprintf("%s answers %q", path.Base(doc), sub.Question))
	}
	return facts
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
