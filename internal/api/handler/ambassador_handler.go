package handler

import (
	"net/http"

	"ambassador_portal/internal/api/middleware"
	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/common"

	"github.com/go-chi/chi/v5"
)

type AmbassadorHandler struct {
	ambassadorService *service.AmbassadorService
	uploadService     *service.UploadService
}

func NewAmbassadorHandler(as *service.AmbassadorService, us *service.UploadService) *AmbassadorHandler {
	return &AmbassadorHandler{ambassadorService: as, uploadService: us}
}

func (h *AmbassadorHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/me", h.dashboard)
	r.Post("/uploads", h.upload)
}

func (h *AmbassadorHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing principal")
		return
	}

	dashboard, err := h.ambassadorService.GetDashboard(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, dashboard)
}

func (h *AmbassadorHandler) upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing principal")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart payload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	category := r.FormValue("type")
	contentType := header.Header.Get("Content-Type")

	upload, err := h.uploadService.SaveProof(r.Context(), userID, category, header.Filename, contentType, header.Size, file)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"url":             upload.URL,
		"public_id":       upload.PublicID,
		"uploadedAt":      upload.UploadedAt,
		"approval_status": upload.ApprovalStatus,
		"points":          upload.Points,
		"type":            category,
	})
}
