// Package authflow orchestrates the multi-step authentication flows against
// the badge platform API: login, OTP-based registration, and OTP-based
// password reset.
//
// Each flow is a small state machine over {Idle, Submitting, Error,
// Completed}. Submitting gates resubmission, so a flow instance has at most
// one request in flight. Client-side validation failures (a non-numeric
// OTP, a short password) surface as *apiclient.ValidationError and never
// reach the network.
//
//	flow := authflow.NewLogin(client, store)
//	if err := flow.Submit(ctx, email, password); err != nil { ... }
//	// flow.State() == authflow.StateCompleted, session stored
//
// Registration and password reset are two-phase: phase 1 sends the OTP and
// carries the trimmed email forward, phase 2 finalizes. Neither flow
// authenticates on success; the user logs in explicitly afterwards.
//
// The Dialogs type models which auth dialog is visible as one tagged state
// with explicit transitions, so invalid combinations (two dialogs open at
// once) cannot be represented.
package authflow
