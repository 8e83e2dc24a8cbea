package command

// Result is a handler's answer: not handled, handled, or handled with one
// derived command to broadcast in the next pass.
type Result struct {
	handled bool
	derived Command
}

func NotHandled() Result {
	return Result{}
}

func Handled() Result {
	return Result{handled: true}
}

// Derive marks the command handled and queues next for the following pass.
func Derive(next Command) Result {
	return Result{handled: true, derived: next}
}

func (r Result) IsHandled() bool {
	return r.handled
}

// Derived returns the follow-up command, or nil.
func (r Result) Derived() Command {
	return r.derived
}
