package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mghilardi/vidlib/internal/common"
	"github.com/mghilardi/vidlib/internal/server/models"
	"github.com/mghilardi/vidlib/internal/server/services"
)

// maxUploadMemory is the in-memory threshold for multipart parsing; larger
// parts are spooled to disk by net/http.
const maxUploadMemory = 32 << 20

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCreateVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	videoFile, videoHeader, err := r.FormFile("videos")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("missing video file"))
		return
	}
	defer videoFile.Close()

	req := services.CreateVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Video: services.UploadFile{
			Name:        videoHeader.Filename,
			Size:        videoHeader.Size,
			ContentType: videoHeader.Header.Get("Content-Type"),
			Body:        videoFile,
		},
	}

	if req.Title == "" {
		req.Title = videoHeader.Filename
	}

	if raw := r.FormValue("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Tags); err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid tags: %w", err))
			return
		}
	}

	if thumbFile, thumbHeader, err := r.FormFile("thumbnail"); err == nil {
		defer thumbFile.Close()
		req.Thumbnail = &services.UploadFile{
			Name:        thumbHeader.Filename,
			Size:        thumbHeader.Size,
			ContentType: thumbHeader.Header.Get("Content-Type"),
			Body:        thumbFile,
		}
	}

	view, err := s.videos.Create(ctx, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	views, err := s.videos.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if views == nil {
		views = []*models.VideoView{}
	}
	s.writeJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	view, err := s.videos.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleUpdateVideo(w http.ResponseWriter, r *http.Request) {
	var update models.VideoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}

	view, err := s.videos.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.videos.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, errors.New("video not found"))
		return
	}
	s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	s.writeError(w, r, http.StatusInternalServerError, errors.New("internal error"))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, r, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "response encode failed", "error", err.Error())
	}
}
