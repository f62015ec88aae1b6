package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"studycards/internal/services"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	users     *services.UserService
	ingestion *services.IngestionService
	cards     *services.FlashcardService
	history   *services.HistoryService
	handler   http.Handler
}

func NewServer(users *services.UserService, ingestion *services.IngestionService,
	cards *services.FlashcardService, history *services.HistoryService) *Server {
	s := &Server{
		users:     users,
		ingestion: ingestion,
		cards:     cards,
		history:   history,
	}
	s.handler = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/flashcards/upload", s.handleUpload).Methods(http.MethodPost)
	api.HandleFunc("/flashcards/{userId}", s.handleListFlashcards).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleAppendHistory).Methods(http.MethodPost)
	api.HandleFunc("/history/{userId}", s.handleListHistory).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./web/static")))

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(requestLogger(r))
}

// requestLogger logs each request with its duration after completion.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("encode response")
	}
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}
