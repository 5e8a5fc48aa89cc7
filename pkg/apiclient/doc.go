// Package apiclient provides a typed client for the remote badge platform
// API: authentication (login, OTP-based registration and password reset),
// the current-user profile, and the public badge catalog.
//
// Every operation performs exactly one network attempt and returns either a
// strongly-typed result or an error from a small taxonomy:
//
//   - ValidationError – a 4xx response carrying a message (matched with errors.As)
//   - ErrUnauthorized – 401, the bearer token is missing/expired
//   - ErrNotFound – 404
//   - ErrServerError – 5xx or a malformed response body
//   - ErrNetworkUnavailable – connectivity failure or timeout
//
// The client never mutates session state; storing or clearing tokens on
// success or on ErrUnauthorized is the caller's responsibility.
//
// # Usage
//
//	client := apiclient.New(
//		apiclient.WithBaseURL("https://profile.deepcytes.io/api/"),
//		apiclient.WithTimeout(15*time.Second),
//	)
//
//	token, err := client.Login(ctx, "jane@example.com", "secret-password")
//	if err != nil {
//		// handle error
//	}
//
//	user, err := client.CurrentUser(ctx, token)
//
// Authenticated operations take the bearer token explicitly; the client adds
// the "Authorization: Bearer <token>" header itself.
package apiclient
