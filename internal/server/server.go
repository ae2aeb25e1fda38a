// Package server implements the local practice engine: an in-process
// HTTP server that speaks the interview wire protocol with built-in
// question banks and a heuristic evaluator, so the client works without
// a model-backed backend.
package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/querybox-dev/querybox/internal/api"
)

const (
	minQuestions = 1
	maxQuestions = 10
)

// session is one interview's server-side state.
type session struct {
	ID        string
	Role      string
	Mode      string
	Questions []string
	// Index is the 0-based index of the question awaiting an answer.
	Index     int
	Scores    []float64
	Completed bool
	CreatedAt time.Time
}

// Server is the practice engine HTTP server.
type Server struct {
	mu       sync.Mutex
	sessions map[string]*session
	listener net.Listener
	server   *http.Server
}

// NewServer creates a practice server bound to addr. An addr of
// "127.0.0.1:0" picks a random port.
func NewServer(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("server: binding listener: %w", err)
	}

	s := &Server{
		sessions: make(map[string]*session),
		listener: ln,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/start_interview", s.handleStart)
	mux.HandleFunc("/submit_answer", s.handleSubmit)
	mux.HandleFunc("/get_summary/", s.handleSummary)

	s.server = &http.Server{Handler: mux}
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start begins serving HTTP requests. Call in a goroutine.
func (s *Server) Start() error {
	return s.server.Serve(s.listener)
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	return s.server.Close()
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	n := len(s.sessions)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"activeSessions": n,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req api.StartRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.Role = strings.TrimSpace(req.Role)
	req.Mode = strings.TrimSpace(req.Mode)
	if req.Role == "" || req.Mode == "" {
		writeError(w, http.StatusBadRequest, "Role and mode are required")
		return
	}

	n := req.NumQuestions
	if n < minQuestions {
		n = minQuestions
	}
	if n > maxQuestions {
		n = maxQuestions
	}

	sess := &session{
		ID:        uuid.NewString(),
		Role:      req.Role,
		Mode:      req.Mode,
		Questions: buildQuestions(req.Role, req.Mode, n),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, api.StartResponse{
		SessionID:      sess.ID,
		Question:       sess.Questions[0],
		QuestionNumber: 1,
		TotalQuestions: n,
		Message: fmt.Sprintf(
			"Welcome to your %s interview for the %s position! I'll ask you %d questions. Let's begin!",
			sess.Mode, sess.Role, n,
		),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req api.SubmitRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		writeError(w, http.StatusBadRequest, "Answer is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[req.SessionID]
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if sess.Completed {
		writeError(w, http.StatusBadRequest, "Interview already completed")
		return
	}

	ev := evaluate(req.Answer)
	sess.Scores = append(sess.Scores, ev.Score)
	sess.Index++

	resp := api.SubmitResponse{
		Message:      "Answer submitted successfully",
		Feedback:     ev.Feedback,
		Score:        api.Score(ev.Score),
		Clarity:      api.Score(ev.Clarity),
		Correctness:  api.Score(ev.Correctness),
		Completeness: api.Score(ev.Completeness),
	}

	if sess.Index >= len(sess.Questions) {
		sess.Completed = true
		resp.Completed = true
	} else {
		resp.NextQuestion = sess.Questions[sess.Index]
		resp.QuestionNumber = sess.Index + 1
		resp.TotalQuestions = len(sess.Questions)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/get_summary/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var avg float64
	finalScore := "N/A"
	if len(sess.Scores) > 0 {
		var total float64
		for _, sc := range sess.Scores {
			total += sc
		}
		avg = total / float64(len(sess.Scores))
		finalScore = fmt.Sprintf("%.1f/10", avg)
	}

	strengths, improvements, resources := summaryBand(avg)
	writeJSON(w, http.StatusOK, summaryResponse{
		FinalScore:     finalScore,
		TotalQuestions: len(sess.Questions),
		Strengths:      strengths,
		Improvements:   improvements,
		Resources:      resources,
		SessionID:      sess.ID,
		Role:           sess.Role,
		CompletedAt:    time.Now().UTC().Format("2006-01-02T15:04:05"),
	})
}

// summaryResponse mirrors the summary wire shape with the score in its
// historical "x.x/10" string form ("N/A" when nothing was answered).
type summaryResponse struct {
	FinalScore     string   `json:"final_score"`
	TotalQuestions int      `json:"totalQuestions"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"areas_for_improvement"`
	Resources      []string `json:"suggested_resources"`
	SessionID      string   `json:"sessionId"`
	Role           string   `json:"role"`
	CompletedAt    string   `json:"completedAt"`
}

// --- Helpers ---

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encoding response: %v", err), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
