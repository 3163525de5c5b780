package handlers

import (
	"fmt"
	"net/http"

	"internhub/internal/app"
	"internhub/internal/http/response"
)

// FileHandler serves stored attachments. Profile pictures render inline,
// resumes download with their original filename.
type FileHandler struct {
	users *app.UserService
}

func NewFileHandler(users *app.UserService) *FileHandler {
	return &FileHandler{users: users}
}

func (h *FileHandler) Resume(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	attachment, err := h.users.GetResume(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(attachment.Data)
}

func (h *FileHandler) ProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	attachment, err := h.users.GetPicture(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", attachment.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(attachment.Data)
}
