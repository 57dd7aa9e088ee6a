package handler

import (
	"encoding/json"
	"net/http"

	"ambassador_portal/internal/api/middleware"
	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/common"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.AdminOnly)
	r.Get("/ambassadors", h.listAmbassadors)
	r.Get("/ambassadors/{id}", h.getAmbassador)
	r.Patch("/ambassadors/{id}/points", h.updatePoints)
	r.Delete("/ambassadors/{id}", h.deleteAmbassador)
}

func ambassadorIDParam(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (h *AdminHandler) listAmbassadors(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.adminService.ListAmbassadors(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, summaries)
}

func (h *AdminHandler) getAmbassador(w http.ResponseWriter, r *http.Request) {
	id, ok := ambassadorIDParam(r)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid ambassador id")
		return
	}

	detail, err := h.adminService.GetAmbassador(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *AdminHandler) updatePoints(w http.ResponseWriter, r *http.Request) {
	id, ok := ambassadorIDParam(r)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid ambassador id")
		return
	}

	var req service.PointsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	detail, err := h.adminService.UpdatePoints(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *AdminHandler) deleteAmbassador(w http.ResponseWriter, r *http.Request) {
	id, ok := ambassadorIDParam(r)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid ambassador id")
		return
	}

	if err := h.adminService.DeleteAmbassador(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
