// Package session persists the authenticated session: a bearer token plus
// minimal identity (email and display name), kept under a fixed "auth"
// namespace so it survives restarts.
//
// The Store interface has exactly three operations: Get, SetToken and Clear.
// Clear is idempotent. Writes are expected to originate from a single
// UI-event goroutine; stores serialize writes internally and the semantics
// are last-write-wins.
//
// A Store is created once at startup and passed explicitly to everything
// that needs auth state; there is no ambient singleton.
//
//	store, err := session.NewFileStore(cfg.Dir)
//	if err != nil { ... }
//
//	sess, _ := store.Get(ctx)
//	if sess.IsAuthenticated() { ... }
//
// When no display name is supplied at login, SetToken derives one from the
// email local-part ("jane@example.com" becomes "jane").
package session
