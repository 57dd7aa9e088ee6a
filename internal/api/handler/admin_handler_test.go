package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ambassador_portal/internal/api/handler"
	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/common"
	"ambassador_portal/internal/common/security"
	"ambassador_portal/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAmbassadorID = "5f6e7d8c-9a0b-4c1d-8e2f-3a4b5c6d7e8f"

// adminAmbRepo holds a single mutable ambassador record.
type adminAmbRepo struct {
	ambassador *model.Ambassador
}

func (r *adminAmbRepo) Create(ctx context.Context, a *model.Ambassador) error { return nil }

func (r *adminAmbRepo) FindByEmail(ctx context.Context, email string) (*model.Ambassador, error) {
	return nil, common.ErrNotFound
}

func (r *adminAmbRepo) FindByID(ctx context.Context, id string) (*model.Ambassador, error) {
	if id == r.ambassador.ID {
		cp := *r.ambassador
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r *adminAmbRepo) FindByReferralCode(ctx context.Context, code string) (*model.Ambassador, error) {
	return nil, common.ErrNotFound
}

func (r *adminAmbRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func (r *adminAmbRepo) FindAllByCreatedAt(ctx context.Context) ([]*model.Ambassador, error) {
	cp := *r.ambassador
	return []*model.Ambassador{&cp}, nil
}

func (r *adminAmbRepo) UpdateManualPoints(ctx context.Context, id string, manualPoints int) error {
	r.ambassador.ManualPoints = manualPoints
	return nil
}

func (r *adminAmbRepo) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	return nil
}

func (r *adminAmbRepo) IncrementReferrals(ctx context.Context, code string) error {
	return common.ErrNotFound
}

func (r *adminAmbRepo) Delete(ctx context.Context, id string) error { return nil }

// adminUploadRepo is an in-memory upload store for the patch contract.
type adminUploadRepo struct {
	entries []*model.Upload
}

func (r *adminUploadRepo) Append(ctx context.Context, u *model.Upload) error {
	cp := *u
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *adminUploadRepo) ListByAmbassador(ctx context.Context, ambassadorID string) (model.UploadsByCategory, error) {
	grouped := model.UploadsByCategory{}
	for _, c := range model.Categories {
		grouped[c] = []model.Upload{}
	}
	for _, u := range r.entries {
		if u.AmbassadorID == ambassadorID {
			grouped[u.Category] = append(grouped[u.Category], *u)
		}
	}
	return grouped, nil
}

func (r *adminUploadRepo) UpdateEntry(ctx context.Context, ambassadorID, category, publicID string, points *int, approvalStatus *string) (bool, error) {
	for _, u := range r.entries {
		if u.AmbassadorID == ambassadorID && u.Category == category && u.PublicID == publicID {
			if points != nil {
				u.Points = *points
			}
			if approvalStatus != nil {
				u.ApprovalStatus = *approvalStatus
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *adminUploadRepo) ListPublicIDs(ctx context.Context, ambassadorID string) ([]string, error) {
	return nil, nil
}

func newAdminRouter(ambRepo *adminAmbRepo, uploadRepo *adminUploadRepo) http.Handler {
	uploadService := service.NewUploadService(uploadRepo, ambRepo, nil)
	adminService := service.NewAdminService(ambRepo, uploadRepo, uploadService)
	h := handler.NewAdminHandler(adminService)

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(security.TokenAuth))
	r.Route("/admin", h.RegisterRoutes)
	return r
}

func adminFixtures() (*adminAmbRepo, *adminUploadRepo) {
	ambRepo := &adminAmbRepo{
		ambassador: &model.Ambassador{
			ID:           testAmbassadorID,
			Name:         "Priya",
			ReferralCode: "PRI-9F2C1A",
			ManualPoints: 1,
			Role:         model.RoleAmbassador,
		},
	}
	uploadRepo := &adminUploadRepo{
		entries: []*model.Upload{
			{
				AmbassadorID:   testAmbassadorID,
				Category:       model.CategoryWhatsappStatus,
				PublicID:       "obj-1",
				ApprovalStatus: model.ApprovalPending,
			},
		},
	}
	return ambRepo, uploadRepo
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := security.GenerateToken("adm-1", model.RoleAdmin, model.PrincipalKindAdmin)
	require.NoError(t, err)
	return token
}

func patchPoints(t *testing.T, router http.Handler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/admin/ambassadors/"+testAmbassadorID+"/points", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUpdatePointsContract(t *testing.T) {
	ambRepo, uploadRepo := adminFixtures()
	router := newAdminRouter(ambRepo, uploadRepo)

	rec := patchPoints(t, router, adminToken(t), `{
		"manualPoints": 9,
		"imageUpdates": [
			{"type": "whatsapp_status", "public_id": "obj-1", "points": 4.6, "approval_status": "verified"},
			{"type": "whatsapp_status", "public_id": "gone", "points": 5}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ManualPoints int `json:"manualPoints"`
		ImagePoints  int `json:"imagePoints"`
		TotalPoints  int `json:"totalPoints"`
		UploadCount  int `json:"uploadCount"`
		Uploads      map[string][]struct {
			PublicID       string `json:"public_id"`
			ApprovalStatus string `json:"approval_status"`
			Points         int    `json:"points"`
		} `json:"uploads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 6, body.ManualPoints) // 1 + clamp(9)=5
	assert.Equal(t, 5, body.ImagePoints)  // 4.6 rounds to 5
	assert.Equal(t, 11, body.TotalPoints)
	assert.Equal(t, 1, body.UploadCount)

	require.Len(t, body.Uploads["whatsapp_status"], 1)
	assert.Equal(t, "verified", body.Uploads["whatsapp_status"][0].ApprovalStatus)
	assert.Equal(t, 5, body.Uploads["whatsapp_status"][0].Points)
}

func TestUpdatePointsRequiresAdminRole(t *testing.T) {
	ambRepo, uploadRepo := adminFixtures()
	router := newAdminRouter(ambRepo, uploadRepo)

	rec := patchPoints(t, router, "", `{"manualPoints": 1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ambassadorToken, err := security.GenerateToken("amb-1", model.RoleAmbassador, model.PrincipalKindAmbassador)
	require.NoError(t, err)
	rec = patchPoints(t, router, ambassadorToken, `{"manualPoints": 1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, 1, ambRepo.ambassador.ManualPoints)
}

func TestUpdatePointsInvalidID(t *testing.T) {
	ambRepo, uploadRepo := adminFixtures()
	router := newAdminRouter(ambRepo, uploadRepo)

	req := httptest.NewRequest(http.MethodPatch, "/admin/ambassadors/not-a-uuid/points", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
