package profile

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/openbadger/badgekit/pkg/apiclient"
)

// BadgeVisibility is one per-badge visibility toggle on the edit form.
type BadgeVisibility struct {
	BadgeID  int
	IsPublic bool
}

// Preferences are the notification toggles on the edit form.
type Preferences struct {
	BadgeReceived bool
	ProfileUpdate bool
	AdminDaily    bool
}

// Image is a newly picked avatar image.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mutation is the edit-form state an update is built from.
type Mutation struct {
	FirstName       string
	LastName        string
	CurrentPassword string
	NewPassword     string
	Badges          []BadgeVisibility
	Preferences     Preferences
	Image           *apiclient.ImageUpload
}

// badgePayload pins the wire encoding: badgeId travels as a string.
type badgePayload struct {
	BadgeID  string `json:"badgeId"`
	IsPublic bool   `json:"isPublic"`
}

type preferencesPayload struct {
	BadgeReceived bool `json:"badgeReceived"`
	ProfileUpdate bool `json:"profileUpdate"`
	AdminDaily    bool `json:"adminDaily"`
}

// Build validates the form state and assembles the multipart payload.
// Password fields are included only when both are non-blank.
func (m Mutation) Build() (apiclient.ProfileUpdate, error) {
	if m.NewPassword != "" {
		if m.CurrentPassword == "" {
			return apiclient.ProfileUpdate{}, apiclient.NewValidationError("Enter current password")
		}
		if len(m.NewPassword) < 8 {
			return apiclient.ProfileUpdate{}, apiclient.NewValidationError("Password must be at least 8 characters")
		}
	}

	badgesJSON, err := encodeBadges(m.Badges)
	if err != nil {
		return apiclient.ProfileUpdate{}, err
	}
	prefsJSON, err := json.Marshal(preferencesPayload(m.Preferences))
	if err != nil {
		return apiclient.ProfileUpdate{}, fmt.Errorf("encode email preferences: %w", err)
	}

	update := apiclient.ProfileUpdate{
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		BadgesJSON:           badgesJSON,
		EmailPreferencesJSON: string(prefsJSON),
		Image:                m.Image,
	}
	if m.CurrentPassword != "" && m.NewPassword != "" {
		update.Password = m.CurrentPassword
		update.NewPassword = m.NewPassword
	}
	return update, nil
}

func encodeBadges(badges []BadgeVisibility) (string, error) {
	payload := make([]badgePayload, 0, len(badges))
	for _, b := range badges {
		payload = append(payload, badgePayload{
			BadgeID:  strconv.Itoa(b.BadgeID),
			IsPublic: b.IsPublic,
		})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode badges: %w", err)
	}
	return string(data), nil
}
