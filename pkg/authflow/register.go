package authflow

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/openbadger/badgekit/pkg/apiclient"
)

// RegistrationAPI is the slice of the API client the registration flow needs.
type RegistrationAPI interface {
	SendRegisterOTP(ctx context.Context, email string) error
	Register(ctx context.Context, req apiclient.RegisterRequest) error
}

// Registration is the two-phase signup flow: SendOTP emails a one-time code
// and carries the trimmed email forward, Finalize submits the details. A
// successful registration does not authenticate.
type Registration struct {
	api RegistrationAPI

	mu           sync.Mutex
	machine      machine
	errMsg       string
	pendingEmail string
}

// NewRegistration creates a registration flow.
func NewRegistration(api RegistrationAPI) *Registration {
	return &Registration{api: api, machine: newMachine()}
}

// State returns the flow state of the current phase's submission.
func (r *Registration) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.state()
}

// ErrorMessage returns the inline message for StateError, empty otherwise.
func (r *Registration) ErrorMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// PendingEmail returns the address the OTP was sent to, empty before phase 2.
func (r *Registration) PendingEmail() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pendingEmail
}

// Cancel discards the transient flow state.
func (r *Registration) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.machine = newMachine()
	r.errMsg = ""
	r.pendingEmail = ""
}

// SendOTP runs phase 1. On success the flow returns to Idle with the trimmed
// email retained for Finalize.
func (r *Registration) SendOTP(ctx context.Context, email string) error {
	if err := r.begin(); err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if err := r.api.SendRegisterOTP(ctx, email); err != nil {
		return r.fail(MsgOTPSendFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingEmail = email
	r.errMsg = ""
	// Phase 1 success re-arms the machine for the finalize submission.
	_ = r.machine.fire(eventSucceed)
	return r.machine.fire(eventReset)
}

// Finalize runs phase 2 with the details and the emailed code. The OTP must
// parse as an integer and the password must be at least 8 characters; both
// checks fail locally without a network call.
func (r *Registration) Finalize(ctx context.Context, firstName, lastName, otp, password string) error {
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
	if len(password) < 8 {
		return r.fail(MsgPasswordLength, apiclient.NewValidationError(MsgPasswordLength))
	}

	req := apiclient.RegisterRequest{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		OTP:       otpCode,
		Password:  password,
	}
	if err := r.api.Register(ctx, req); err != nil {
		return r.fail(MsgSignupFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = ""
	r.pendingEmail = ""
	return r.machine.fire(eventSucceed)
}

func (r *Registration) begin() error {
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

func (r *Registration) fail(msg string, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = msg
	_ = r.machine.fire(eventFail)
	return err
}
