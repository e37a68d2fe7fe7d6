package emulator

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/smartclinic/clinic-ops/internal/api"
	"github.com/smartclinic/clinic-ops/internal/appointments"
	"github.com/smartclinic/clinic-ops/internal/assistant"
	"github.com/smartclinic/clinic-ops/internal/patients"
	"github.com/smartclinic/clinic-ops/pkg/logging"
)

// Server emulates the clinic backend over HTTP. It serves the same routes
// and error shape as the production service, backed by an in-memory Store
// and a pluggable assistant completer.
type Server struct {
	store     *Store
	completer assistant.Completer
	logger    *logging.Logger
	router    chi.Router
}

type ServerConfig struct {
	Store     *Store
	Completer assistant.Completer
	Logger    *logging.Logger

	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler
}

func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		store:     cfg.Store,
		completer: cfg.Completer,
		logger:    cfg.Logger,
	}
	if s.store == nil {
		s.store = NewStore()
	}
	if s.completer == nil {
		s.completer = assistant.NewStaticCompleter()
	}
	if s.logger == nil {
		s.logger = logging.New("info")
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/patients", func(r chi.Router) {
			r.Get("/", s.handleListPatients)
			r.Post("/", s.handleCreatePatient)
			r.Put("/{id}", s.handleUpdatePatient)
			r.Delete("/{id}", s.handleDeletePatient)
		})
		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", s.handleListAppointments)
			r.Post("/", s.handleCreateAppointment)
			r.Put("/{id}", s.handleUpdateAppointment)
			r.Delete("/{id}", s.handleDeleteAppointment)
		})
		r.Route("/chat", func(r chi.Router) {
			r.Post("/message", s.handleChatMessage)
			r.Get("/history/{session_id}", s.handleChatHistory)
		})
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleListPatients(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListPatients())
}

func (s *Server) handleCreatePatient(w http.ResponseWriter, r *http.Request) {
	var in patients.CreatePatient
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p := s.store.CreatePatient(in)
	s.logger.Info("patient created", "patient_id", p.ID)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	var in patients.UpdatePatient
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p, ok := s.store.UpdatePatient(chi.URLParam(r, "id"), in)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Patient not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePatient(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeletePatient(chi.URLParam(r, "id")) {
		writeDetail(w, http.StatusNotFound, "Patient not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Patient deleted successfully"})
}

func (s *Server) handleListAppointments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListAppointments())
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var in appointments.CreateAppointment
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	a := s.store.CreateAppointment(in)
	s.logger.Info("appointment created", "appointment_id", a.ID, "patient_id", a.PatientID)
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var in appointments.UpdateAppointment
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	a, ok := s.store.UpdateAppointment(chi.URLParam(r, "id"), in)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteAppointment(chi.URLParam(r, "id")) {
		writeDetail(w, http.StatusNotFound, "Appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Appointment deleted successfully"})
}

func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var in api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Message == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "message is required")
		return
	}

	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := make([]assistant.Turn, 0)
	for _, ex := range s.store.History(sessionID) {
		history = append(history,
			assistant.Turn{Role: assistant.RoleUser, Text: ex.Message},
			assistant.Turn{Role: assistant.RoleAssistant, Text: ex.Response},
		)
	}

	resp, err := s.completer.Complete(r.Context(), assistant.Request{
		System:  assistant.SystemPrompt,
		History: history,
		Message: in.Message,
	})
	if err != nil {
		s.logger.Error("assistant completion failed", "error", err, "session_id", sessionID)
		writeDetail(w, http.StatusInternalServerError, "assistant unavailable")
		return
	}

	s.store.AppendExchange(sessionID, in.Message, resp.Text)
	writeJSON(w, http.StatusOK, api.ChatResponse{Response: resp.Text, SessionID: sessionID})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.History(chi.URLParam(r, "session_id")))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
