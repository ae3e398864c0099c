package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/n200534/socioconnect/internal/handler"
	"github.com/n200534/socioconnect/internal/httputil"
	authmw "github.com/n200534/socioconnect/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes.
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	PostHandler         *handler.PostHandler
	InteractionHandler  *handler.InteractionHandler
	NotificationHandler *handler.NotificationHandler
	UploadHandler       *handler.UploadHandler
	JWTSecret           string
}

// NewRouter creates and configures a Chi router with all route groups.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
	})

	// Public read endpoints with optional authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuthMiddleware(cfg.JWTSecret))

		r.Get("/users/search", cfg.UserHandler.Search)
		r.Get("/users/{username}", cfg.UserHandler.GetProfile)
		r.Get("/users/{id}/posts", cfg.UserHandler.GetUserPosts)
		r.Get("/users/{id}/follow-stats", cfg.UserHandler.GetFollowStats)
		r.Get("/users/{id}/followers", cfg.UserHandler.GetFollowers)
		r.Get("/users/{id}/following", cfg.UserHandler.GetFollowing)

		r.Get("/posts/{id}", cfg.PostHandler.Get)
		r.Get("/posts/{id}/replies", cfg.PostHandler.ListReplies)
		r.Get("/posts/{id}/comments", cfg.InteractionHandler.ListComments)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Get("/auth/me", cfg.AuthHandler.Me)
		r.Post("/auth/logout", cfg.AuthHandler.Logout)
		r.Put("/users/me", cfg.UserHandler.UpdateMe)

		r.Get("/feed", cfg.PostHandler.Feed)

		r.Post("/posts", cfg.PostHandler.Create)
		r.Delete("/posts/{id}", cfg.PostHandler.Delete)

		r.Post("/posts/{id}/like", cfg.InteractionHandler.ToggleLike)
		r.Post("/posts/{id}/repost", cfg.InteractionHandler.ToggleRepost)
		r.Post("/posts/{id}/comments", cfg.InteractionHandler.CreateComment)
		r.Post("/users/{id}/follow", cfg.InteractionHandler.ToggleFollow)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", cfg.NotificationHandler.List)
			r.Get("/stats", cfg.NotificationHandler.Stats)
			r.Post("/read", cfg.NotificationHandler.MarkRead)
			r.Post("/read-all", cfg.NotificationHandler.MarkAllRead)
			r.Post("/{id}/archive", cfg.NotificationHandler.Archive)
			r.Delete("/{id}", cfg.NotificationHandler.Delete)
			r.Delete("/", cfg.NotificationHandler.DeleteAll)
		})

		if cfg.UploadHandler != nil {
			r.Post("/uploads/avatar", cfg.UploadHandler.UploadAvatar)
			r.Post("/uploads/media", cfg.UploadHandler.UploadMedia)
		}
	})

	return r
}
