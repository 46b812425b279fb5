package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jewel-backend/internal/handlers"
	"jewel-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	counterHandler *handlers.CounterHandler,
	containerHandler *handlers.ContainerHandler,
	pieceHandler *handlers.PieceHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	totpHandler *handlers.TOTPHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	// Login step two is public by design: the temp token is the credential.
	r.HandleFunc("/api/totp/verify", totpHandler.Verify).Methods("POST")

	// Protected API routes - Counters
	countersAPI := r.PathPrefix("/api/counters").Subrouter()
	countersAPI.Use(authMiddleware.Authenticate)
	countersAPI.HandleFunc("", counterHandler.ListCounters).Methods("GET")
	countersAPI.HandleFunc("", counterHandler.CreateCounter).Methods("POST")
	countersAPI.HandleFunc("/{id}", counterHandler.UpdateCounter).Methods("PUT")
	countersAPI.HandleFunc("/{id}", counterHandler.DeleteCounter).Methods("DELETE")

	// Protected API routes - Containers (the UI calls them boxes)
	boxesAPI := r.PathPrefix("/api/boxes").Subrouter()
	boxesAPI.Use(authMiddleware.Authenticate)
	boxesAPI.HandleFunc("", containerHandler.ListContainers).Methods("GET")
	boxesAPI.HandleFunc("", containerHandler.CreateContainer).Methods("POST")
	boxesAPI.HandleFunc("/by-counter", containerHandler.ListByCounter).Methods("GET")
	boxesAPI.HandleFunc("/{id}", containerHandler.GetContainer).Methods("GET")
	boxesAPI.HandleFunc("/{id}", containerHandler.UpdateContainer).Methods("PUT")
	boxesAPI.HandleFunc("/{id}", containerHandler.DeleteContainer).Methods("DELETE")

	// Protected API routes - Pieces
	piecesAPI := r.PathPrefix("/api/pieces").Subrouter()
	piecesAPI.Use(authMiddleware.Authenticate)
	piecesAPI.HandleFunc("", pieceHandler.ListPieces).Methods("GET")
	piecesAPI.HandleFunc("", pieceHandler.CreatePiece).Methods("POST")
	piecesAPI.HandleFunc("/by-box", pieceHandler.ListByContainer).Methods("GET")
	piecesAPI.HandleFunc("/transfer", pieceHandler.TransferPiece).Methods("POST")
	piecesAPI.HandleFunc("/sell", pieceHandler.SellPiece).Methods("POST")
	piecesAPI.HandleFunc("/{id}", pieceHandler.UpdatePiece).Methods("PUT")
	piecesAPI.HandleFunc("/{id}", pieceHandler.DeletePiece).Methods("DELETE")

	// Protected API routes - Dashboard and reports
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.Summary).Methods("GET")

	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/stock.pdf", reportHandler.StockPDF).Methods("GET")

	// Protected API routes - TOTP management (admin only)
	totpAPI := r.PathPrefix("/api/totp").Subrouter()
	totpAPI.HandleFunc("/setup", authMiddleware.RequireAdmin(http.HandlerFunc(totpHandler.Setup)).ServeHTTP).Methods("POST")
	totpAPI.HandleFunc("/enable", authMiddleware.RequireAdmin(http.HandlerFunc(totpHandler.Enable)).ServeHTTP).Methods("POST")

	// Health endpoint (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
