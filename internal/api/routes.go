package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Activities *ActivityHandler
	History    *HistoryHandler
	Reports    *ErrorReportHandler
	Files      *FileHandler
}

// RegisterRoutes mounts the API on r. Every route except registration,
// login and refresh runs behind authenticate.
func RegisterRoutes(r chi.Router, h Handlers, authenticate func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Post("/auth/change-password", h.Auth.ChangePassword)

			r.Get("/users/me", h.Users.GetProfile)
			r.Put("/users/me", h.Users.UpdateProfile)
			r.Patch("/users/me/points", h.Users.UpdatePoints)

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", h.Activities.ListActivities)
				r.Post("/", h.Activities.CreateActivity)
				r.Get("/{id}", h.Activities.GetActivity)
				r.Delete("/{id}", h.Activities.DeleteActivity)
				r.Post("/{id}/favorite", h.Activities.AddFavorite)
				r.Delete("/{id}/favorite", h.Activities.RemoveFavorite)
				r.Put("/{id}/rating", h.Activities.RateActivity)
				r.Get("/{id}/ratings", h.Activities.ListActivityRatings)
			})
			r.Get("/favorites", h.Activities.ListFavorites)
			r.Get("/ratings", h.Activities.ListMyRatings)

			r.Get("/history", h.History.ListHistory)
			r.Post("/history", h.History.CreateHistory)

			r.Get("/error-reports", h.Reports.ListReports)
			r.Post("/error-reports", h.Reports.CreateReport)

			r.Get("/files", h.Files.ListFiles)
			r.Post("/files", h.Files.UploadFile)
			r.Get("/files/{id}", h.Files.GetFile)
			r.Get("/files/{id}/content", h.Files.GetFileContent)
		})
	})
}
