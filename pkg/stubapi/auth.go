package stubapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func withEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKeyEmail, email)
}

func emailFrom(ctx context.Context) string {
	email, _ := ctx.Value(ctxKeyEmail).(string)
	return email
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	OTP       int    `json:"otp" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         int    `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeValid(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid login request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[req.Email]
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = req.Email
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleRegisterOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := s.decodeValid(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		writeMessage(w, http.StatusBadRequest, "Account already exists")
		return
	}

	code := newOTP()
	s.otps[req.Email] = code
	s.log.Info("registration OTP issued", slog.String("email", req.Email), slog.Int("otp", code))
	writeMessage(w, http.StatusOK, "OTP sent")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decodeValid(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid registration request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.otps[req.Email]
	if !ok || code != req.OTP {
		writeMessage(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Could not store credentials")
		return
	}
	s.users[req.Email] = &account{
		email:        req.Email,
		firstName:    req.FirstName,
		lastName:     req.LastName,
		passwordHash: hash,
	}
	delete(s.otps, req.Email)
	writeMessage(w, http.StatusOK, "Registration successful")
}

func (s *Server) handleResetOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := s.decodeValid(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; !exists {
		writeMessage(w, http.StatusBadRequest, "No account for this email")
		return
	}

	code := newOTP()
	s.otps[req.Email] = code
	s.log.Info("password reset OTP issued", slog.String("email", req.Email), slog.Int("otp", code))
	writeMessage(w, http.StatusOK, "OTP sent")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := s.decodeValid(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid reset request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.otps[req.Email]
	if !ok || code != req.OTP {
		writeMessage(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	acc, ok := s.users[req.Email]
	if !ok {
		writeMessage(w, http.StatusBadRequest, "No account for this email")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Could not store credentials")
		return
	}
	acc.passwordHash = hash
	delete(s.otps, req.Email)
	writeMessage(w, http.StatusOK, "Password reset successful")
}
