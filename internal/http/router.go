package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wellnest/internal/auth"
	"wellnest/internal/insight"
	"wellnest/internal/notice"
	"wellnest/internal/repo"
	"wellnest/internal/service"
)

type API struct {
	Repo      *repo.Repo
	Service   *service.Service
	Auth      *auth.Manager
	Notices   *notice.Hub
	Generator *insight.Generator
	Scheduler *insight.Scheduler
	Origins   []string
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(loggingMiddleware)
	r.Use(a.corsMiddleware)

	r.Get("/health", a.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", a.handleRegister)
		r.Post("/login", a.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.authMiddleware)
		r.Post("/auth/logout", a.handleLogout)
		r.Get("/me", a.handleMe)

		r.Get("/settings", a.handleGetSettings)
		r.Put("/settings", a.handleUpdateSettings)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", a.handleListTasks)
			r.Post("/", a.handleCreateTask)
			r.Put("/{id}", a.handleUpdateTask)
			r.Delete("/{id}", a.handleDeleteTask)
			r.Post("/{id}/toggle", a.handleToggleTask)
		})
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", a.handleListExpenses)
			r.Post("/", a.handleCreateExpense)
			r.Delete("/{id}", a.handleDeleteExpense)
		})
		r.Route("/health-entries", func(r chi.Router) {
			r.Get("/", a.handleListHealthEntries)
			r.Put("/", a.handleSaveHealthEntry)
		})
		r.Route("/insights", func(r chi.Router) {
			r.Get("/", a.handleListInsights)
			r.Post("/generate", a.handleGenerateInsights)
			r.Post("/{id}/read", a.handleMarkInsightRead)
		})
		r.Get("/notices", a.handleListNotices)
		r.Get("/dashboard", a.handleDashboard)
	})

	return r
}
