package api

import (
	"net/http"
	"time"

	"ambassador_portal/internal/api/handler"
	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	ambassadorService *service.AmbassadorService,
	uploadService *service.UploadService,
	adminService *service.AdminService,
	referralService *service.ReferralService,
	leaderboardService *service.LeaderboardService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the session token when present, puts claims in context.
	// Authenticator middleware enforces it on protected routes.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		ambassadorHandler := handler.NewAmbassadorHandler(ambassadorService, uploadService)
		referralHandler := handler.NewReferralHandler(referralService)
		v1.Route("/ambassadors", func(amb chi.Router) {
			// Referral signal routes (shared-secret bearer token)
			amb.Route("/referrals", referralHandler.RegisterRoutes)

			// Self-service routes (authenticated)
			amb.Group(func(priv chi.Router) {
				ambassadorHandler.RegisterRoutes(priv)
			})
		})

		// Admin console routes (authenticated, admin role)
		adminHandler := handler.NewAdminHandler(adminService)
		v1.Route("/admin", adminHandler.RegisterRoutes)

		// Leaderboard routes (public)
		leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
		v1.Route("/leaderboard", leaderboardHandler.RegisterRoutes)
	})

	return r
}
