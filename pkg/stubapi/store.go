package stubapi

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Badge is a catalog entry as served on the wire.
type Badge struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Image        *string `json:"image,omitempty"`
	Category     *string `json:"category,omitempty"`
	Level        *string `json:"level,omitempty"`
	Vertical     *string `json:"vertical,omitempty"`
	Holders      int     `json:"holders"`
	YearLaunched int     `json:"yearLaunched"`
}

// UserBadge is a badge attached to an account.
type UserBadge struct {
	BadgeID       int     `json:"badgeId"`
	Name          *string `json:"name,omitempty"`
	IsPublic      bool    `json:"isPublic"`
	EarnedDate    *string `json:"earnedDate,omitempty"`
	CertificateID *string `json:"certificateId,omitempty"`
}

// EmailPreferences are an account's notification toggles.
type EmailPreferences struct {
	BadgeReceived bool `json:"badgeReceived"`
	ProfileUpdate bool `json:"profileUpdate"`
	AdminDaily    bool `json:"adminDaily"`
}

// account is the stored server-side user record.
type account struct {
	email        string
	firstName    string
	lastName     string
	passwordHash []byte
	image        *string
	badges       []UserBadge
	prefs        *EmailPreferences
}

// SeedAccount registers a user directly, bypassing the OTP flow. Intended
// for tests and development seeding. Seeded badges without a certificate id
// get one assigned.
func (s *Server) SeedAccount(ctx context.Context, email, firstName, lastName, password string, badges ...UserBadge) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	for i := range badges {
		if badges[i].CertificateID == nil {
			cert := uuid.NewString()
			badges[i].CertificateID = &cert
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = &account{
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		passwordHash: hash,
		badges:       badges,
	}
	return nil
}

// SeedBadge adds a catalog entry with an earner count.
func (s *Server) SeedBadge(b Badge, earners int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badges = append(s.badges, b)
	s.earners[b.ID] = earners
}

// OTPFor returns the last one-time code generated for the email, for tests.
func (s *Server) OTPFor(email string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.otps[email]
	return code, ok
}

// newOTP generates a six-digit code.
func newOTP() int {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in far worse trouble
		// than a weak stub OTP.
		return 123456
	}
	return int(n.Int64()) + 100000
}
