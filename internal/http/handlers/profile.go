package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"internhub/internal/app"
	"internhub/internal/common"
	"internhub/internal/domain/user"
	"internhub/internal/http/middleware"
	"internhub/internal/http/response"
)

type ProfileHandler struct {
	users          *app.UserService
	maxUploadBytes int64
}

func NewProfileHandler(users *app.UserService, maxUploadBytes int64) *ProfileHandler {
	return &ProfileHandler{users: users, maxUploadBytes: maxUploadBytes}
}

type profileUpdateRequest struct {
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Education []user.Education `json:"education"`
	Skills    []string         `json:"skills"`
	Keywords  []string         `json:"keywords"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	account, err := h.users.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.users.UpdateProfile(r.Context(), userID, user.ProfileUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		Education: req.Education,
		Skills:    req.Skills,
		Keywords:  req.Keywords,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ProfileHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	attachment, err := attachmentFromForm(r, "resume", h.maxUploadBytes)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.users.StoreResume(r.Context(), userID, *attachment); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, messageResponse{Message: "resume uploaded"})
}

func (h *ProfileHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	attachment, err := attachmentFromForm(r, "picture", h.maxUploadBytes)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.users.StorePicture(r.Context(), userID, *attachment); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, messageResponse{Message: "profile picture uploaded"})
}

func attachmentFromForm(r *http.Request, field string, maxBytes int64) (*user.Attachment, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, common.NewError(common.CodeValidation, "invalid multipart form", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, common.NewValidationError("invalid request", map[string]string{field: field + " file is required"})
	}
	defer file.Close()
	data, err := readUpload(file, maxBytes)
	if err != nil {
		return nil, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &user.Attachment{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func readUpload(file multipart.File, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read uploaded file", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, common.NewError(common.CodeValidation, "uploaded file is too large", nil)
	}
	return data, nil
}
