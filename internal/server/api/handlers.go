package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/dkrasnovs/filestash/internal/server/models"
	"github.com/dkrasnovs/filestash/internal/server/services"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "username", user.UserName)
	writeJSON(w, http.StatusCreated, registerResponse{ID: user.ID, Username: user.UserName, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	// A little headroom over the ceiling for multipart framing; the service
	// enforces the exact limit on the declared file size.
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+(512<<10))

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		writeError(w, http.StatusBadRequest, "empty file")
		return
	}

	contentType := header.Header.Get("Content-Type")

	record, err := s.files.Upload(r.Context(), claims.Subject, header.Filename, contentType, header.Size, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "uploaded", "file_id", record.ID, "size", record.Size)
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	list, err := s.files.List(r.Context(), claims.Subject)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []*models.FileRecord{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	record, rc, err := s.files.Download(r.Context(), claims.Subject, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer rc.Close()

	// The original filename is display-only; only its base name travels back.
	disposition := mime.FormatMediaType("attachment",
		map[string]string{"filename": filepath.Base(record.OriginalFileName)})

	w.Header().Set("Content-Type", record.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", record.Size))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; all we can do is log the broken transfer.
		s.logger.Error(r.Context(), "download interrupted", "file_id", record.ID, "error", err.Error())
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	if err := s.files.Delete(r.Context(), claims.Subject, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
