package handler

import (
	"encoding/json"
	"net/http"

	"ambassador_portal/internal/api/middleware"
	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/common"

	"github.com/go-chi/chi/v5"
)

// ReferralHandler exposes the externally-called referral endpoints. Both are
// guarded by the shared-secret bearer check; the signup system that reports
// referrals is the only expected caller.
type ReferralHandler struct {
	referralService *service.ReferralService
}

func NewReferralHandler(rs *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: rs}
}

func (h *ReferralHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.APIKeyAuth)
	r.Post("/verify", h.verify)
	r.Post("/increment", h.increment)
}

type referralCodePayload struct {
	ReferralCode string `json:"referralCode"`
}

func (h *ReferralHandler) verify(w http.ResponseWriter, r *http.Request) {
	var payload referralCodePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	result, err := h.referralService.Verify(r.Context(), payload.ReferralCode)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"valid": true, "data": result})
}

func (h *ReferralHandler) increment(w http.ResponseWriter, r *http.Request) {
	var payload referralCodePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if err := h.referralService.Increment(r.Context(), payload.ReferralCode); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Referral recorded"})
}
