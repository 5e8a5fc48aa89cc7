// Package stubapi is an in-memory implementation of the badge platform API
// for local development and integration tests. It serves every endpoint the
// client speaks — auth (login, OTP registration, OTP password reset), the
// current-user profile including the multipart update, and the badge
// catalog — without any external dependency.
//
//	srv := stubapi.New(stubapi.WithSeedCatalog())
//	ts := httptest.NewServer(srv.Handler())
//
// OTPs are generated per email and exposed through OTPFor for tests; the
// development server logs them instead of sending mail.
package stubapi
