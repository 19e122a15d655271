package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kone-backend/internal/auth"
	"kone-backend/internal/handlers"
	"kone-backend/internal/middleware"
	"kone-backend/internal/stream"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	stockHandler *handlers.StockHandler,
	dealHandler *handlers.DealHandler,
	newItemHandler *handlers.NewItemHandler,
	assemblyHandler *handlers.AssemblyHandler,
	contactHandler *handlers.ContactHandler,
	auditLogHandler *handlers.AuditLogHandler,
	chatHandler *handlers.ChatHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	hub *stream.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.GetSummary).Methods("GET")
	dashboardAPI.HandleFunc("/outbound", dashboardHandler.GetOutboundChart).Methods("GET")

	// Protected API routes - Stock
	stockAPI := r.PathPrefix("/api/stock").Subrouter()
	stockAPI.Use(authMiddleware.Authenticate)
	stockAPI.HandleFunc("", stockHandler.List).Methods("GET")
	stockAPI.HandleFunc("/refresh", stockHandler.Refresh).Methods("POST")

	// Protected API routes - Deal history
	dealsAPI := r.PathPrefix("/api/deals").Subrouter()
	dealsAPI.Use(authMiddleware.Authenticate)
	dealsAPI.HandleFunc("", dealHandler.List).Methods("GET")
	dealsAPI.HandleFunc("/refresh", dealHandler.Refresh).Methods("POST")

	// Protected API routes - New items
	newItemsAPI := r.PathPrefix("/api/newitems").Subrouter()
	newItemsAPI.Use(authMiddleware.Authenticate)
	newItemsAPI.HandleFunc("", newItemHandler.List).Methods("GET")

	// Protected API routes - Assembly feasibility
	assembliesAPI := r.PathPrefix("/api/assemblies").Subrouter()
	assembliesAPI.Use(authMiddleware.Authenticate)
	assembliesAPI.HandleFunc("", assemblyHandler.List).Methods("GET")

	// Protected API routes - Contacts, receivables and team
	contactsAPI := r.PathPrefix("/api/contacts").Subrouter()
	contactsAPI.Use(authMiddleware.Authenticate)
	contactsAPI.HandleFunc("", contactHandler.List).Methods("GET")
	contactsAPI.HandleFunc("/refresh", contactHandler.Refresh).Methods("POST")

	receivablesAPI := r.PathPrefix("/api/receivables").Subrouter()
	receivablesAPI.Use(authMiddleware.Authenticate)
	receivablesAPI.HandleFunc("", contactHandler.Receivables).Methods("GET")

	teamAPI := r.PathPrefix("/api/team").Subrouter()
	teamAPI.Use(authMiddleware.Authenticate)
	teamAPI.HandleFunc("", contactHandler.Team).Methods("GET")

	// Protected API routes - Audit logs (admin only)
	logsAPI := r.PathPrefix("/api/logs").Subrouter()
	logsAPI.Use(authMiddleware.Authenticate)
	logsAPI.HandleFunc("", authMiddleware.RequireRole(auth.RoleAdmin)(http.HandlerFunc(auditLogHandler.List)).ServeHTTP).Methods("GET")
	logsAPI.HandleFunc("/refresh", authMiddleware.RequireRole(auth.RoleAdmin)(http.HandlerFunc(auditLogHandler.Refresh)).ServeHTTP).Methods("POST")

	// Protected API routes - Chat assistant (admins and managers)
	chatAPI := r.PathPrefix("/api/chat").Subrouter()
	chatAPI.Use(authMiddleware.Authenticate)
	chatAPI.HandleFunc("", authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleManager)(http.HandlerFunc(chatHandler.Send)).ServeHTTP).Methods("POST")

	// Protected API routes - Reports (admin only)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/stock/pdf", authMiddleware.RequireRole(auth.RoleAdmin)(http.HandlerFunc(reportHandler.GetStockPDF)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/stock/csv", authMiddleware.RequireRole(auth.RoleAdmin)(http.HandlerFunc(reportHandler.GetStockCSV)).ServeHTTP).Methods("GET")

	// Refresh/staleness push channel for UI clients
	r.HandleFunc("/ws", hub.HandleWebSocket)

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
