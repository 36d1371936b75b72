package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/kotae/internal/chat"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/hfapi"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/store"
	"go.uber.org/zap"
)

// multipart form overhead allowed on top of the document size limit
const formOverhead = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}

type trainResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Chunks     int    `json:"chunks"`
	Pages      int    `json:"pages"`
	DocumentID string `json:"documentId"`
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	maxSize := s.config.Upload.MaxSizeBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+formOverhead)
	if err := r.ParseMultipartForm(maxSize + formOverhead); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := s.uploadedFile(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		s.respondError(w, http.StatusRequestEntityTooLarge, "File too large (max 10MB)")
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/pdf" && ct != "application/octet-stream" {
		s.respondError(w, http.StatusUnsupportedMediaType, "Only PDF files are allowed")
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if !extract.LooksLikePDF(content) {
		s.respondError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	var patch *models.SettingsPatch
	if raw := r.FormValue("settings"); raw != "" {
		patch = &models.SettingsPatch{}
		if err := json.Unmarshal([]byte(raw), patch); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid settings payload")
			return
		}
	}

	s.logger.Debug("train request", zap.String("name", header.Filename), zap.Int64("size", header.Size))
	result, err := s.trainer.Train(r.Context(), header.Filename, content, patch)
	if err != nil {
		s.logger.Error("training failed", zap.String("name", header.Filename), zap.Error(err))
		s.respondError(w, trainStatus(err), err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, trainResponse{
		Success:    true,
		Message:    "Document trained successfully",
		Chunks:     result.Chunks,
		Pages:      result.Pages,
		DocumentID: result.DocumentID,
	})
}

// uploadedFile returns the uploaded document from the "pdf" form field,
// accepting "file" as a fallback name.
func (s *Server) uploadedFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile("pdf")
	if err == nil {
		return file, header, nil
	}
	return r.FormFile("file")
}

func trainStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, hfapi.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
	Model   string `json:"model"`
	Style   string `json:"style"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("chat request", zap.String("question", req.Question))
	answer, err := s.engine.Ask(r.Context(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyQuestion):
			s.respondError(w, http.StatusBadRequest, "Question is required")
		case errors.Is(err, chat.ErrNoDocuments):
			s.respondError(w, http.StatusBadRequest, "No documents trained yet. Please upload and train documents first.")
		case errors.Is(err, hfapi.ErrTimeout):
			s.logger.Error("chat timed out", zap.Error(err))
			s.respondError(w, http.StatusGatewayTimeout, err.Error())
		default:
			s.logger.Error("chat failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusOK, chatResponse{
		Success: true,
		Answer:  answer.Text,
		Model:   answer.Model,
		Style:   answer.Style,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Documents())
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete document request", zap.String("id", id))
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Document not found")
			return
		}
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Document deleted",
	})
}

type statsResponse struct {
	TotalDocuments int        `json:"totalDocuments"`
	TotalChunks    int        `json:"totalChunks"`
	LastUpdated    *time.Time `json:"lastUpdated,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	docs, chunks, last := s.store.Stats()
	s.respondJSON(w, http.StatusOK, statsResponse{
		TotalDocuments: docs,
		TotalChunks:    chunks,
		LastUpdated:    last,
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	merged, err := s.store.MergeSettings(&patch)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": merged,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
