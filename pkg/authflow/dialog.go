package authflow

// Dialog identifies which auth dialog is visible. Exactly one is active at
// a time; the transition table below is the only way to move between them,
// so states like "signup and forgot-password open together" cannot exist.
type Dialog string

const (
	DialogNone        Dialog = "none"
	DialogLogin       Dialog = "login"
	DialogSignup      Dialog = "signup"
	DialogSignupFinal Dialog = "signup_final"
	DialogForgot      Dialog = "forgot"
	DialogResetFinal  Dialog = "reset_final"
)

var dialogTransitions = map[Dialog][]Dialog{
	DialogNone:        {DialogLogin},
	DialogLogin:       {DialogSignup, DialogForgot, DialogNone},
	DialogSignup:      {DialogLogin, DialogSignupFinal, DialogNone},
	DialogSignupFinal: {DialogNone},
	DialogForgot:      {DialogLogin, DialogResetFinal, DialogNone},
	DialogResetFinal:  {DialogNone},
}

// Dialogs tracks the visible auth dialog and the email carried between the
// OTP phases. Dismissing discards the transient state.
type Dialogs struct {
	current      Dialog
	pendingEmail string
}

// NewDialogs starts with no dialog visible.
func NewDialogs() *Dialogs {
	return &Dialogs{current: DialogNone}
}

// Current returns the visible dialog.
func (d *Dialogs) Current() Dialog {
	return d.current
}

// PendingEmail returns the email carried into a final dialog.
func (d *Dialogs) PendingEmail() string {
	return d.pendingEmail
}

// OpenLogin shows the login dialog from the closed state.
func (d *Dialogs) OpenLogin() error {
	return d.transition(DialogLogin)
}

// ToSignup moves login → signup.
func (d *Dialogs) ToSignup() error {
	return d.transition(DialogSignup)
}

// ToForgot moves login → forgot-password.
func (d *Dialogs) ToForgot() error {
	return d.transition(DialogForgot)
}

// BackToLogin returns from signup or forgot-password to login.
func (d *Dialogs) BackToLogin() error {
	return d.transition(DialogLogin)
}

// OTPSent advances signup → signup-final or forgot → reset-final, carrying
// the address the code was sent to.
func (d *Dialogs) OTPSent(email string) error {
	var next Dialog
	switch d.current {
	case DialogSignup:
		next = DialogSignupFinal
	case DialogForgot:
		next = DialogResetFinal
	default:
		return &TransitionError{From: State(d.current), Event: "otp_sent"}
	}
	if err := d.transition(next); err != nil {
		return err
	}
	d.pendingEmail = email
	return nil
}

// Dismiss closes whatever dialog is open and discards transient state.
// Dismissing the closed state is a no-op.
func (d *Dialogs) Dismiss() {
	d.current = DialogNone
	d.pendingEmail = ""
}

func (d *Dialogs) transition(next Dialog) error {
	for _, allowed := range dialogTransitions[d.current] {
		if allowed == next {
			if next == DialogNone {
				d.pendingEmail = ""
			}
			d.current = next
			return nil
		}
	}
	return &TransitionError{From: State(d.current), Event: string(next)}
}
