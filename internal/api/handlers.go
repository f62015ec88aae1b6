package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"studycards/internal/generator"
	"studycards/internal/services"
)

// maxUploadBytes bounds the multipart form; larger PDFs are rejected.
const maxUploadBytes = 8 << 20

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	user, err := s.users.Signup(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		writeError(w, http.StatusBadRequest, "Email already registered", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Signup failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	userID := r.FormValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required", nil)
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "PDF file is required", err)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF files are supported", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}

	result, err := s.ingestion.ProcessUpload(r.Context(), userID, header.Filename, data)
	if errors.Is(err, generator.ErrNoCards) {
		writeError(w, http.StatusUnprocessableEntity, "Could not generate flashcards from this document", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process upload", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Flashcards generated successfully",
		"flashcards": result.Flashcards,
		"filename":   result.Filename,
		"uploadDate": result.UploadDate,
		"statistics": result.Statistics,
		"total":      result.Total,
	})
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	filter := services.ListFilter{Difficulty: r.URL.Query().Get("difficulty")}
	if raw := r.URL.Query().Get("marks"); raw != "" {
		marks, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "marks must be a number", err)
			return
		}
		filter.Marks = marks
	}

	cards, err := s.cards.ListByUser(r.Context(), userID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list flashcards", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"flashcards": cards,
		"total":      len(cards),
	})
}

type historyRequest struct {
	UserID   string `json:"userId"`
	FileName string `json:"fileName"`
}

func (s *Server) handleAppendHistory(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" || req.FileName == "" {
		writeError(w, http.StatusBadRequest, "userId and fileName are required", nil)
		return
	}

	entry, err := s.history.Append(r.Context(), req.UserID, req.FileName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record history", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	entries, err := s.history.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list history", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"history": entries,
		"total":   len(entries),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
