package authflow

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/openbadger/badgekit/pkg/apiclient"
)

// ResetAPI is the slice of the API client the password-reset flow needs.
type ResetAPI interface {
	SendResetOTP(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email string, otp int, newPassword string) error
}

// Reset is the two-phase password-reset flow, shaped exactly like
// Registration: SendOTP then Finalize. Success does not authenticate.
type Reset struct {
	api ResetAPI

	mu           sync.Mutex
	machine      machine
	errMsg       string
	pendingEmail string
}

// NewReset creates a password-reset flow.
func NewReset(api ResetAPI) *Reset {
	return &Reset{api: api, machine: newMachine()}
}

// State returns the flow state of the current phase's submission.
func (r *Reset) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.state()
}

// ErrorMessage returns the inline message for StateError, empty otherwise.
func (r *Reset) ErrorMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// PendingEmail returns the address the OTP was sent to, empty before phase 2.
func (r *Reset) PendingEmail() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pendingEmail
}

// Cancel discards the transient flow state.
func (r *Reset) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.machine = newMachine()
	r.errMsg = ""
	r.pendingEmail = ""
}

// SendOTP runs phase 1, emailing a recovery code to the trimmed address.
func (r *Reset) SendOTP(ctx context.Context, email string) error {
	if err := r.begin(); err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if err := r.api.SendResetOTP(ctx, email); err != nil {
		return r.fail(MsgOTPSendFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingEmail = email
	r.errMsg = ""
	_ = r.machine.fire(eventSucceed)
	return r.machine.fire(eventReset)
}

// Finalize runs phase 2 with the emailed code and the new password, applying
// the same local validations as registration.
func (r *Reset) Finalize(ctx context.Context, otp, newPassword string) error {
	r.mu.Lock()
	email := r.pendingEmail
	r.mu.Unlock()
	if email == "" {
		return ErrOTPNotRequested
	}

	if err := r.begin(); err != nil {
		return err
	}

	otpCode, err := strconv.Atoi(strings.TrimSpace(otp))
	if err != nil {
		return r.fail(MsgInvalidOTP, apiclient.NewValidationError(MsgInvalidOTP))
	}
	if len(newPassword) < 8 {
		return r.fail(MsgPasswordLength, apiclient.NewValidationError(MsgPasswordLength))
	}

	if err := r.api.ResetPassword(ctx, email, otpCode, newPassword); err != nil {
		return r.fail(MsgResetFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = ""
	r.pendingEmail = ""
	return r.machine.fire(eventSucceed)
}

func (r *Reset) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.machine.state() {
	case StateSubmitting:
		return ErrSubmissionInFlight
	case StateCompleted:
		return ErrFlowCompleted
	}
	return r.machine.fire(eventSubmit)
}

func (r *Reset) fail(msg string, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = msg
	_ = r.machine.fire(eventFail)
	return err
}
