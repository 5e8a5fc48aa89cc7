package authflow

import (
	"context"
	"strings"
	"sync"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/session"
)

// LoginAPI is the slice of the API client the login flow needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Login authenticates with email and password and stores the session on
// success. One instance backs one login form.
type Login struct {
	api   LoginAPI
	store session.Store

	mu      sync.Mutex
	machine machine
	errMsg  string
}

// NewLogin creates a login flow writing to the given session store.
func NewLogin(api LoginAPI, store session.Store) *Login {
	return &Login{api: api, store: store, machine: newMachine()}
}

// State returns the flow state.
func (l *Login) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.machine.state()
}

// ErrorMessage returns the inline message for StateError, empty otherwise.
func (l *Login) ErrorMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Reset returns an Error or Completed flow to Idle.
func (l *Login) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.machine.canFire(eventReset) {
		_ = l.machine.fire(eventReset)
		l.errMsg = ""
	}
}

// Submit attempts a login. The email is trimmed before submission; the
// password is sent as typed. On success the session store holds the token,
// the trimmed email, and a display name derived from the email local-part.
func (l *Login) Submit(ctx context.Context, email, password string) error {
	if err := l.begin(); err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return l.fail(MsgMissingLogin, apiclient.NewValidationError(MsgMissingLogin))
	}

	token, err := l.api.Login(ctx, email, password)
	if err != nil {
		return l.fail(MsgLoginFailed, err)
	}
	if err := l.store.SetToken(ctx, token, email, ""); err != nil {
		return l.fail(MsgLoginFailed, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = ""
	return l.machine.fire(eventSucceed)
}

// begin moves the flow to Submitting, rejecting concurrent or post-completion
// submissions.
func (l *Login) begin() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch l.machine.state() {
	case StateSubmitting:
		return ErrSubmissionInFlight
	case StateCompleted:
		return ErrFlowCompleted
	}
	return l.machine.fire(eventSubmit)
}

func (l *Login) fail(msg string, err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = msg
	_ = l.machine.fire(eventFail)
	return err
}
