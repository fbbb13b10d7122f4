package httpserver

import (
	"net/http"
	"time"

	"family-tree-go/internal/config"
	"family-tree-go/internal/transport/httpserver/handler"
	authmw "family-tree-go/internal/transport/httpserver/middleware"
	"family-tree-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.JWTAuth, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/refresh-token", handlers.RefreshToken)
		r.Post("/auth/register", handlers.Register)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/auth/logout", handlers.Logout)

			r.Post("/families", handlers.CreateFamily)
			r.Get("/families/{id}", handlers.GetFamily)
			r.Put("/families/{id}", handlers.UpdateFamily)

			r.Post("/members", handlers.CreateMember)
			r.Get("/members", handlers.ListMembers)
			r.Get("/members/search", handlers.SearchMembers)
			r.Post("/members/spouse", handlers.CreateSpouse)
			r.Post("/members/child", handlers.CreateChild)
			r.Post("/members/family-leader", handlers.CreateFamilyLeader)
			r.Post("/members/avatar", handlers.UploadAvatar)
			r.Get("/members/family/{familyId}", handlers.GetFamilyMembers)
			r.Get("/members/{id}", handlers.GetMember)
			r.Get("/members/{id}/details", handlers.GetMemberDetails)
			r.Put("/members/{id}", handlers.UpdateMember)
			r.Delete("/members/{id}", handlers.DeleteMember)

			r.Post("/marriages", handlers.CreateMarriage)
			r.Get("/marriages", handlers.ListMarriages)
			r.Get("/marriages/{id}", handlers.GetMarriage)
			r.Put("/marriages/{id}", handlers.UpdateMarriage)
			r.Delete("/marriages/{id}", handlers.DeleteMarriage)

			r.Post("/parent-child-relationships", handlers.CreateRelationship)
			r.Get("/parent-child-relationships", handlers.ListRelationships)
			r.Get("/parent-child-relationships/{id}", handlers.GetRelationship)
			r.Put("/parent-child-relationships/{id}", handlers.UpdateRelationship)
			r.Delete("/parent-child-relationships/{id}", handlers.DeleteRelationship)

			r.Post("/relationship-types", handlers.CreateRelationshipType)
			r.Get("/relationship-types", handlers.ListRelationshipTypes)
			r.Get("/relationship-types/{id}", handlers.GetRelationshipType)
			r.Put("/relationship-types/{id}", handlers.UpdateRelationshipType)
			r.Delete("/relationship-types/{id}", handlers.DeleteRelationshipType)

			r.Post("/events", handlers.CreateEvent)
			r.Get("/events", handlers.ListEvents)
			r.Get("/events/{id}", handlers.GetEvent)
			r.Patch("/events/{id}", handlers.UpdateEvent)
			r.Delete("/events/{id}", handlers.DeleteEvent)

			r.Post("/family-history", handlers.CreateHistoryRecord)
			r.Get("/family-history/family/{familyId}", handlers.GetFamilyHistory)
			r.Get("/family-history/family/{familyId}/search", handlers.SearchFamilyHistory)
			r.Get("/family-history/{id}", handlers.GetHistoryRecord)
			r.Put("/family-history/{id}", handlers.UpdateHistoryRecord)
			r.Delete("/family-history/{id}", handlers.DeleteHistoryRecord)

			r.Post("/media", handlers.UploadMedia)
			r.Get("/media/{id}", handlers.GetMedia)
			r.Put("/media/{id}", handlers.UpdateMedia)
			r.Delete("/media/{id}", handlers.DeleteMedia)
			r.Post("/media/bulk-delete", handlers.BulkDeleteMedia)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Delete("/families/{id}", handlers.DeleteFamily)
				r.Get("/members/export", handlers.ExportMembers)

				r.Post("/accounts", handlers.CreateAccount)
				r.Get("/accounts", handlers.ListAccounts)
				r.Get("/accounts/{id}", handlers.GetAccount)
				r.Put("/accounts/{id}", handlers.UpdateAccount)
				r.Delete("/accounts/{id}", handlers.DeleteAccount)
			})
		})
	})

	return r
}
