package authflow

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInFlight indicates a submit was attempted while the flow
	// was already Submitting.
	ErrSubmissionInFlight = errors.New("authflow: submission already in flight")

	// ErrFlowCompleted indicates a submit was attempted on a finished flow.
	ErrFlowCompleted = errors.New("authflow: flow already completed")

	// ErrOTPNotRequested indicates a finalize was attempted before the OTP
	// phase succeeded.
	ErrOTPNotRequested = errors.New("authflow: no OTP has been requested")
)

// TransitionError indicates an event the current state does not allow.
type TransitionError struct {
	From  State
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("authflow: no transition from state %q for event %q", e.From, e.Event)
}

// User-facing failure messages, mirrored exactly by the screens.
const (
	MsgLoginFailed    = "Authentication failed. Please check credentials."
	MsgOTPSendFailed  = "Failed to send OTP"
	MsgSignupFailed   = "Signup failed. Check OTP/details."
	MsgResetFailed    = "Reset failed. Check OTP."
	MsgInvalidOTP     = "Invalid OTP"
	MsgPasswordLength = "Password must be at least 8 characters"
	MsgMissingLogin   = "Email and password are required"
)
