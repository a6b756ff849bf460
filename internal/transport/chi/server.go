package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/intentd/internal/domain"
	"github.com/kailas-cloud/intentd/internal/metrics"
	chatuc "github.com/kailas-cloud/intentd/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/intentd/internal/usecase/health"
	intentsuc "github.com/kailas-cloud/intentd/internal/usecase/intents"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the classification API over chi.
type Server struct {
	chat          *chatuc.Service
	intents       *intentsuc.Service
	health        *healthuc.Service
	serviceName   string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	chat *chatuc.Service,
	intents *intentsuc.Service,
	health *healthuc.Service,
	serviceName string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		chat:        chat,
		intents:     intents,
		health:      health,
		serviceName: serviceName,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMissingMessage, http.StatusBadRequest),
		sentinelHandler(domain.ErrEmptyMessage, http.StatusBadRequest),
		sentinelHandler(domain.ErrMessageTooLong, http.StatusBadRequest),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Post("/chat", s.Chat)
	r.Get("/intents", s.ListIntents)
	r.Get("/metrics", s.Metrics)
}

// ChatRequest is the POST /chat body. Message is a pointer so a body without
// the field is distinguishable from an empty string.
type ChatRequest struct {
	Message *string `json:"message"`
}

// ChatResponse is the POST /chat success body.
type ChatResponse struct {
	Message    string  `json:"message"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Response   string  `json:"response"`
}

// IntentEntry is one listed intent in the GET /intents body.
type IntentEntry struct {
	Tag     string `json:"tag"`
	Example string `json:"example"`
}

// IntentsResponse is the GET /intents body.
type IntentsResponse struct {
	Intents []IntentEntry `json:"intents"`
	Total   int           `json:"total"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.chat.Classify(r.Context(), req.Message)
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			metrics.ClassificationRejectedTotal.WithLabelValues(reason).Inc()
		}
		s.handleDomainError(w, err)
		return
	}

	metrics.ClassificationsTotal.WithLabelValues(res.Intent, string(res.Outcome)).Inc()
	metrics.ClassificationConfidence.Observe(res.Confidence)

	writeJSON(w, http.StatusOK, ChatResponse{
		Message:    res.Message,
		Intent:     res.Intent,
		Confidence: res.Confidence,
		Response:   res.Response,
	})
}

// ListIntents handles GET /intents.
func (s *Server) ListIntents(w http.ResponseWriter, r *http.Request) {
	entries := s.intents.List()

	items := make([]IntentEntry, len(entries))
	for i, e := range entries {
		items[i] = IntentEntry{Tag: e.Tag, Example: e.Example}
	}

	writeJSON(w, http.StatusOK, IntentsResponse{
		Intents: items,
		Total:   len(items),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Service: s.serviceName,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMissingMessage,
		domain.ErrEmptyMessage,
		domain.ErrMessageTooLong,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingMessage):
		return "missing"
	case errors.Is(err, domain.ErrEmptyMessage):
		return "empty"
	case errors.Is(err, domain.ErrMessageTooLong):
		return "too_long"
	default:
		return ""
	}
}
