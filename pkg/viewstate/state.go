package viewstate

import (
	"errors"

	"github.com/openbadger/badgekit/pkg/apiclient"
)

// Phase is the render phase of a screen.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is what a screen renders. Data is meaningful only in PhaseSuccess,
// Message only in PhaseError.
type State[T any] struct {
	Phase   Phase
	Data    T
	Message string
}

// User-facing error messages. Technical detail never reaches the screen.
const (
	MsgNoConnection = "Please connect to the internet"
	MsgGenericError = "Something went wrong. Please try again."
)

// ErrorMessage maps a load failure to its user-facing message.
func ErrorMessage(err error) string {
	if errors.Is(err, apiclient.ErrNetworkUnavailable) {
		return MsgNoConnection
	}
	return MsgGenericError
}
