package stubapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Server holds the in-memory platform state and its router.
type Server struct {
	log      *slog.Logger
	validate *validator.Validate
	router   chi.Router

	mu      sync.Mutex
	users   map[string]*account
	tokens  map[string]string // bearer token -> email
	otps    map[string]int    // email -> last code
	badges  []Badge
	earners map[int]int
}

// Option configures a Server during construction.
type Option func(*Server)

// WithLogger attaches a structured logger; generated OTPs are logged at
// info level so a developer can complete the flows.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSeedCatalog loads the default development catalog.
func WithSeedCatalog() Option {
	return func(s *Server) {
		seedCatalog(s)
	}
}

// New creates an empty stub platform.
func New(opts ...Option) *Server {
	s := &Server{
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: validator.New(),
		users:    make(map[string]*account),
		tokens:   make(map[string]string),
		otps:     make(map[string]int),
		earners:  make(map[int]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register/otp", s.handleRegisterOTP)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/reset-password/otp", s.handleResetOTP)
	r.Post("/auth/reset-password", s.handleResetPassword)
	r.Get("/badges", s.handleListBadges)
	r.Get("/badge/earners/{id}", s.handleEarners)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/user", s.handleCurrentUser)
		r.Put("/user/profile", s.handleUpdateProfile)
		r.Delete("/user/profile/image", s.handleRemoveImage)
		r.Get("/badges-earned", s.handleEarnedBadges)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

type ctxKey string

const ctxKeyEmail ctxKey = "email"

// requireAuth resolves the bearer token to an account email.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeMessage(w, http.StatusUnauthorized, "Missing or invalid token")
			return
		}

		s.mu.Lock()
		email, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Missing or invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withEmail(r.Context(), email)))
	})
}

// decodeValid decodes a JSON body and runs struct validation on it.
func (s *Server) decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
