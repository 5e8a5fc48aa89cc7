package stubapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// maxProfileUpload bounds the multipart body kept in memory.
const maxProfileUpload = 8 << 20

type userResponse struct {
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	Email            string            `json:"email"`
	Image            *string           `json:"image,omitempty"`
	Badges           []UserBadge       `json:"badges"`
	EmailPreferences *EmailPreferences `json:"emailPreferences,omitempty"`
}

func (s *Server) handleListBadges(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	badges := make([]Badge, len(s.badges))
	copy(badges, s.badges)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string][]Badge{"badges": badges})
}

func (s *Server) handleEarners(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid badge id")
		return
	}

	s.mu.Lock()
	count, ok := s.earners[id]
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Unknown badge")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"earners": count})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acc, ok := s.users[emailFrom(r.Context())]
	if !ok {
		s.mu.Unlock()
		writeMessage(w, http.StatusUnauthorized, "Missing or invalid token")
		return
	}
	resp := userResponse{
		FirstName:        acc.firstName,
		LastName:         acc.lastName,
		Email:            acc.email,
		Image:            acc.image,
		Badges:           append([]UserBadge(nil), acc.badges...),
		EmailPreferences: acc.prefs,
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// handleUpdateProfile applies one atomic multipart update: names, optional
// password change, badge visibility, email preferences and an optional
// avatar image.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProfileUpload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	firstName := r.FormValue("firstName")
	lastName := r.FormValue("lastName")
	password := r.FormValue("password")
	newPassword := r.FormValue("newPassword")

	var badges []struct {
		BadgeID  string `json:"badgeId"`
		IsPublic bool   `json:"isPublic"`
	}
	if raw := r.FormValue("badges"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &badges); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid badges payload")
			return
		}
	}

	var prefs *EmailPreferences
	if raw := r.FormValue("emailPreferences"); raw != "" {
		prefs = new(EmailPreferences)
		if err := json.Unmarshal([]byte(raw), prefs); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid emailPreferences payload")
			return
		}
	}

	var image *string
	if file, header, err := r.FormFile("profileImage"); err == nil {
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Could not read profile image")
			return
		}
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		uri := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
		image = &uri
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[emailFrom(r.Context())]
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing or invalid token")
		return
	}

	if newPassword != "" {
		if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
			writeMessage(w, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		if len(newPassword) < 8 {
			writeMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.MinCost)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Could not store credentials")
			return
		}
		acc.passwordHash = hash
	}

	if firstName != "" {
		acc.firstName = firstName
	}
	if lastName != "" {
		acc.lastName = lastName
	}
	if prefs != nil {
		acc.prefs = prefs
	}
	if image != nil {
		acc.image = image
	}
	for _, b := range badges {
		id, err := strconv.Atoi(b.BadgeID)
		if err != nil {
			continue
		}
		for i := range acc.badges {
			if acc.badges[i].BadgeID == id {
				acc.badges[i].IsPublic = b.IsPublic
			}
		}
	}

	writeMessage(w, http.StatusOK, "Profile updated successfully")
}

func (s *Server) handleRemoveImage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[emailFrom(r.Context())]
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing or invalid token")
		return
	}
	acc.image = nil

	writeMessage(w, http.StatusOK, "Profile image removed")
}

func (s *Server) handleEarnedBadges(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acc, ok := s.users[emailFrom(r.Context())]
	if !ok {
		s.mu.Unlock()
		writeMessage(w, http.StatusUnauthorized, "Missing or invalid token")
		return
	}
	owned := make(map[int]bool, len(acc.badges))
	for _, ub := range acc.badges {
		owned[ub.BadgeID] = true
	}
	earned := []Badge{}
	for _, b := range s.badges {
		if owned[b.ID] {
			earned = append(earned, b)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string][]Badge{"badges": earned})
}
