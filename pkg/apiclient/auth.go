package apiclient

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// RegisterRequest finalizes a registration started by SendRegisterOTP.
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	OTP       int    `json:"otp"`
	Password  string `json:"password"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         int    `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	err := c.doJSON(ctx, http.MethodPost, "auth/login", "", loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// SendRegisterOTP emails a one-time code to the address, starting a
// registration.
func (c *Client) SendRegisterOTP(ctx context.Context, email string) error {
	var out basicResponse
	return c.doJSON(ctx, http.MethodPost, "auth/register/otp", "", emailRequest{Email: email}, &out)
}

// Register finalizes a registration with the emailed OTP. A successful
// registration does not authenticate; the user logs in separately.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	var out basicResponse
	return c.doJSON(ctx, http.MethodPost, "auth/register", "", req, &out)
}

// SendResetOTP emails a one-time code authorizing a password reset.
func (c *Client) SendResetOTP(ctx context.Context, email string) error {
	var out basicResponse
	return c.doJSON(ctx, http.MethodPost, "auth/reset-password/otp", "", emailRequest{Email: email}, &out)
}

// ResetPassword finalizes a password reset with the emailed OTP. Like
// Register, success does not authenticate.
func (c *Client) ResetPassword(ctx context.Context, email string, otp int, newPassword string) error {
	var out basicResponse
	return c.doJSON(ctx, http.MethodPost, "auth/reset-password", "",
		resetPasswordRequest{Email: email, OTP: otp, NewPassword: newPassword}, &out)
}
