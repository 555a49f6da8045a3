package http

import (
	"net/http"

	"vetadmin/internal/delivery/http/handler"
	"vetadmin/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	authHandler     *handler.AuthHandler
	staffHandler    *handler.StaffHandler
	catalogHandler  *handler.CatalogHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	staffHandler *handler.StaffHandler,
	catalogHandler *handler.CatalogHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		authHandler:     authHandler,
		staffHandler:    staffHandler,
		catalogHandler:  catalogHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.Refresh).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Staff management (administrators only). The {role} segment selects
	// which staff collection the provisioning protocol operates on.
	admin := api.PathPrefix("/staff").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdministrator)
	admin.HandleFunc("/{role}", r.staffHandler.Provision).Methods(http.MethodPost)
	admin.HandleFunc("/{role}", r.staffHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/{role}/{id}", r.staffHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/{role}/{id}", r.staffHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/{role}/{id}", r.staffHandler.Remove).Methods(http.MethodDelete)

	// Audit trail (administrators only)
	audit := api.PathPrefix("/audit-logs").Subrouter()
	audit.Use(r.authMiddleware.Authenticate)
	audit.Use(middleware.RequireAdministrator)
	audit.HandleFunc("", r.auditLogHandler.List).Methods(http.MethodGet)

	// Catalog (any authenticated staff)
	catalog := api.PathPrefix("/catalog").Subrouter()
	catalog.Use(r.authMiddleware.Authenticate)
	catalog.Use(middleware.RequireStaff)
	catalog.HandleFunc("/specialties", r.catalogHandler.Specialties).Methods(http.MethodGet)
	catalog.HandleFunc("/services", r.catalogHandler.Services).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
