package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// UserBadge is a badge as attached to a specific user's profile. Identity
// (BadgeID) is immutable; visibility (IsPublic) is user-editable.
type UserBadge struct {
	BadgeID       int     `json:"badgeId"`
	Name          *string `json:"name,omitempty"`
	IsPublic      bool    `json:"isPublic"`
	EarnedDate    *string `json:"earnedDate,omitempty"`
	CertificateID *string `json:"certificateId,omitempty"`
}

// EmailPreferences are the user's notification toggles.
type EmailPreferences struct {
	BadgeReceived bool `json:"badgeReceived"`
	ProfileUpdate bool `json:"profileUpdate"`
	AdminDaily    bool `json:"adminDaily"`
}

// User is the authenticated user's profile. Email cannot be changed from
// the client side.
type User struct {
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	Email            string            `json:"email"`
	Image            *string           `json:"image,omitempty"`
	Badges           []UserBadge       `json:"badges"`
	EmailPreferences *EmailPreferences `json:"emailPreferences,omitempty"`
}

// ImageUpload is an optional binary attachment on a profile update.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProfileUpdate is the assembled multipart payload for UpdateProfile. Build
// it with the profile package rather than by hand; the builder enforces the
// password rules and produces the exact badges/emailPreferences encodings.
//
// All text fields are written as plain form fields without a per-part
// Content-Type. BadgesJSON and EmailPreferencesJSON carry compact JSON text.
// Password fields are omitted entirely when empty.
type ProfileUpdate struct {
	FirstName            string
	LastName             string
	Password             string
	NewPassword          string
	BadgesJSON           string
	EmailPreferencesJSON string
	Image                *ImageUpload
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var out User
	if err := c.doJSON(ctx, http.MethodGet, "user", token, nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// UpdateProfile submits one atomic multipart profile update and returns the
// server's message.
func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct {
		name  string
		value string
		skip  bool
	}{
		{"firstName", update.FirstName, false},
		{"lastName", update.LastName, false},
		{"password", update.Password, update.Password == ""},
		{"newPassword", update.NewPassword, update.NewPassword == ""},
		{"badges", update.BadgesJSON, false},
		{"emailPreferences", update.EmailPreferencesJSON, false},
	}
	for _, f := range fields {
		if f.skip {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return "", fmt.Errorf("%w: write field %s: %w", ErrServerError, f.name, err)
		}
	}

	if img := update.Image; img != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="profileImage"; filename=%q`, img.Filename))
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return "", fmt.Errorf("%w: create image part: %w", ErrServerError, err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return "", fmt.Errorf("%w: write image part: %w", ErrServerError, err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: finalize multipart body: %w", ErrServerError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"user/profile", strings.NewReader(buf.String()))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrServerError, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out basicResponse
	if err := c.do(req, token, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// RemoveProfileImage deletes the stored avatar image.
func (c *Client) RemoveProfileImage(ctx context.Context, token string) error {
	var out basicResponse
	return c.doJSON(ctx, http.MethodDelete, "user/profile/image", token, nil, &out)
}
