package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi router with the full REST surface.
//
// Requests flow through trace-ID assignment and request logging before any
// route handler runs. The register, login, refresh, and account-creation
// endpoints are open; every other route sits behind the bearer-token
// middleware.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)

		// account creation is the one anonymous operation on /api/users
		r.Post("/api/users", h.register)
	})

	// routes that require a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)

		r.Route("/api/tasks", func(r chi.Router) {
			r.Post("/", h.createTask)
			r.Get("/", h.listTasks)
			r.Get("/{taskID}", h.getTask)
			r.Put("/{taskID}", h.updateTask)
			r.Delete("/{taskID}", h.deleteTask)
		})

		r.Get("/api/users", h.listUsers)
		r.Get("/api/users/{userID}", h.getUser)
		r.Put("/api/users/{userID}", h.updateUser)
		r.Delete("/api/users/{userID}", h.deleteUser)
	})

	return router
}
