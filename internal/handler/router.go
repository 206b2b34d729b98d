package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phone-directory-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	logger          *slog.Logger
	jwtSecret       string
	authHandler     *AuthHandler
	orgHandler      *OrganizationHandler
	deptHandler     *DepartmentHandler
	empHandler      *EmployeeHandler
	settingsHandler *SettingsHandler
}

// NewRouter создаёт новый роутер
func NewRouter(
	logger *slog.Logger,
	jwtSecret string,
	authHandler *AuthHandler,
	orgHandler *OrganizationHandler,
	deptHandler *DepartmentHandler,
	empHandler *EmployeeHandler,
	settingsHandler *SettingsHandler,
) *Router {
	return &Router{
		logger:          logger,
		jwtSecret:       jwtSecret,
		authHandler:     authHandler,
		orgHandler:      orgHandler,
		deptHandler:     deptHandler,
		empHandler:      empHandler,
		settingsHandler: settingsHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer(r.logger))
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ContentType)
	router.Use(middleware.Auth(r.jwtSecret))

	router.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	router.Post("/auth/login", r.authHandler.Login)
	router.Post("/auth/change-password", r.authHandler.ChangePassword)

	router.Route("/organizations", func(router chi.Router) {
		router.Get("/", r.orgHandler.List)
		router.Post("/", r.orgHandler.Create)
		router.Get("/{id}", r.orgHandler.GetByID)
		router.Put("/{id}", r.orgHandler.Update)
		router.Delete("/{id}", r.orgHandler.Delete)
	})

	router.Route("/departments", func(router chi.Router) {
		router.Get("/", r.deptHandler.List)
		router.Post("/", r.deptHandler.Create)
		router.Get("/{id}", r.deptHandler.GetByID)
		router.Put("/{id}", r.deptHandler.Update)
		router.Delete("/{id}", r.deptHandler.Delete)
	})

	router.Route("/employees", func(router chi.Router) {
		router.Get("/", r.empHandler.List)
		router.Post("/", r.empHandler.Create)
		router.Get("/{id}", r.empHandler.GetByID)
		router.Put("/{id}", r.empHandler.Update)
		router.Delete("/{id}", r.empHandler.Delete)
	})

	router.Route("/settings", func(router chi.Router) {
		router.Get("/", r.settingsHandler.Get)
		router.Put("/", r.settingsHandler.Update)
	})

	return router
}
