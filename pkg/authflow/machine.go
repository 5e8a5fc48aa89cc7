package authflow

// State is a flow's lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateError      State = "error"
	StateCompleted  State = "completed"
)

type event string

const (
	eventSubmit  event = "submit"
	eventSucceed event = "succeed"
	eventFail    event = "fail"
	eventReset   event = "reset"
)

// flowTransitions is the shared transition table for all three flows.
// Submitting has no submit transition, which is what makes resubmission
// impossible while a request is in flight.
var flowTransitions = map[State]map[event]State{
	StateIdle: {
		eventSubmit: StateSubmitting,
	},
	StateSubmitting: {
		eventSucceed: StateCompleted,
		eventFail:    StateError,
	},
	StateError: {
		eventSubmit: StateSubmitting,
		eventReset:  StateIdle,
	},
	StateCompleted: {
		eventReset: StateIdle,
	},
}

// machine tracks the current state and validates transitions against the
// table. Flows embed it; callers drive it from a single goroutine but the
// flows still lock around fire/state for safety.
type machine struct {
	current State
}

func newMachine() machine {
	return machine{current: StateIdle}
}

func (m *machine) state() State {
	return m.current
}

// fire applies ev if the table allows it from the current state.
func (m *machine) fire(ev event) error {
	next, ok := flowTransitions[m.current][ev]
	if !ok {
		return &TransitionError{From: m.current, Event: string(ev)}
	}
	m.current = next
	return nil
}

func (m *machine) canFire(ev event) bool {
	_, ok := flowTransitions[m.current][ev]
	return ok
}
