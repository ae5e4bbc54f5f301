package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"goldlink-backend/internal/api/ws"
	"goldlink-backend/internal/security"
	"goldlink-backend/internal/service"
	"goldlink-backend/internal/storage"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	auth         service.AuthService
	admin        service.AdminService
	jewelry      service.JewelryService
	bookings     service.BookingService
	transactions service.TransactionService
	estimations  service.EstimationService
	reviews      service.ReviewService
	messages     service.MessageService

	tokens  security.TokenManager
	hub     *ws.Hub
	uploads storage.Backend

	allowedOrigins []string
	maxUploadBytes int64
	localUploadDir string // non-empty when local storage serves files itself
}

type ServerParams struct {
	Auth         service.AuthService
	Admin        service.AdminService
	Jewelry      service.JewelryService
	Bookings     service.BookingService
	Transactions service.TransactionService
	Estimations  service.EstimationService
	Reviews      service.ReviewService
	Messages     service.MessageService

	Tokens  security.TokenManager
	Hub     *ws.Hub
	Uploads storage.Backend

	AllowedOrigins []string
	MaxUploadMB    int64
	LocalUploadDir string
}

func NewServer(p ServerParams) *Server {
	maxMB := p.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &Server{
		auth:           p.Auth,
		admin:          p.Admin,
		jewelry:        p.Jewelry,
		bookings:       p.Bookings,
		transactions:   p.Transactions,
		estimations:    p.Estimations,
		reviews:        p.Reviews,
		messages:       p.Messages,
		tokens:         p.Tokens,
		hub:            p.Hub,
		uploads:        p.Uploads,
		allowedOrigins: p.AllowedOrigins,
		maxUploadBytes: maxMB << 20,
		localUploadDir: p.LocalUploadDir,
	}
}

// Router builds the full route table with CORS and request logging applied.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Auth
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/users/me", s.requireAuth(s.handleGetProfile)).Methods(http.MethodGet)
	api.HandleFunc("/users/me", s.requireAuth(s.handleUpdateProfile)).Methods(http.MethodPut)

	// Admin
	api.HandleFunc("/admin/users", s.requireAuth(s.handleAdminListUsers)).Methods(http.MethodGet)
	api.HandleFunc("/admin/users/{id}", s.requireAuth(s.handleAdminUpdateUser)).Methods(http.MethodPatch)
	api.HandleFunc("/admin/users/{id}", s.requireAuth(s.handleAdminDeleteUser)).Methods(http.MethodDelete)
	api.HandleFunc("/admin/bookings", s.requireAuth(s.handleAdminListBookings)).Methods(http.MethodGet)

	// Jewelry
	api.HandleFunc("/jewelry", s.optionalAuth(s.handleSearchJewelry)).Methods(http.MethodGet)
	api.HandleFunc("/jewelry", s.requireAuth(s.handleCreateJewelry)).Methods(http.MethodPost)
	api.HandleFunc("/jewelry/{id}", s.optionalAuth(s.handleGetJewelry)).Methods(http.MethodGet)
	api.HandleFunc("/jewelry/{id}", s.requireAuth(s.handleUpdateJewelry)).Methods(http.MethodPut)
	api.HandleFunc("/jewelry/{id}", s.requireAuth(s.handleDeleteJewelry)).Methods(http.MethodDelete)
	api.HandleFunc("/jewelry/{id}/reviews", s.handleListJewelryReviews).Methods(http.MethodGet)

	// Bookings
	api.HandleFunc("/bookings/preview", s.requireAuth(s.handlePreviewBooking)).Methods(http.MethodPost)
	api.HandleFunc("/bookings", s.requireAuth(s.handleCreateBooking)).Methods(http.MethodPost)
	api.HandleFunc("/bookings", s.requireAuth(s.handleListBookings)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", s.requireAuth(s.handleGetBooking)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/status", s.requireAuth(s.handleUpdateBookingStatus)).Methods(http.MethodPatch)

	// Transactions
	api.HandleFunc("/transactions", s.requireAuth(s.handleListTransactions)).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{id}", s.requireAuth(s.handleGetTransaction)).Methods(http.MethodGet)

	// Estimations
	api.HandleFunc("/estimations", s.requireAuth(s.handleCreateEstimation)).Methods(http.MethodPost)
	api.HandleFunc("/estimations", s.requireAuth(s.handleListEstimations)).Methods(http.MethodGet)
	api.HandleFunc("/estimations/{id}", s.requireAuth(s.handleGetEstimation)).Methods(http.MethodGet)

	// Reviews
	api.HandleFunc("/reviews", s.requireAuth(s.handleCreateReview)).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/reviews", s.handleListUserReviews).Methods(http.MethodGet)

	// Messaging
	api.HandleFunc("/messages", s.requireAuth(s.handleSendMessage)).Methods(http.MethodPost)
	api.HandleFunc("/conversations", s.requireAuth(s.handleListConversations)).Methods(http.MethodGet)
	api.HandleFunc("/conversations/{id}/messages", s.requireAuth(s.handleListMessages)).Methods(http.MethodGet)
	api.HandleFunc("/ws", s.requireAuth(s.handleWebsocket)).Methods(http.MethodGet)

	// Uploads
	api.HandleFunc("/uploads", s.requireAuth(s.handleUpload)).Methods(http.MethodPost)
	if s.localUploadDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.localUploadDir))))
	}

	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return logRequests(c.Handler(r))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization required"})
		return
	}
	s.hub.Serve(w, r, actor.ID)
}
