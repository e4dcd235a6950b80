package monitor

// Status classifies the result of a single monitor run.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailure  Status = "failure"
	StatusDisabled Status = "disabled"
)

// Outcome is the immutable result of one monitor run. Construct it with
// Success, Failure, or Disabled; never mutate it afterwards.
type Outcome struct {
	Status     Status
	Diagnostic string // error text captured from the assertion, empty otherwise
}

// Success returns the outcome of a run whose assertion held.
func Success() Outcome { return Outcome{Status: StatusSuccess} }

// Failure returns the outcome of a failing run. diagnostic carries any
// error text from the assertion and ends up in the notification body.
func Failure(diagnostic string) Outcome {
	return Outcome{Status: StatusFailure, Diagnostic: diagnostic}
}

// Disabled returns the outcome of a run that was skipped because the
// monitor is disabled for the active environment.
func Disabled() Outcome { return Outcome{Status: StatusDisabled} }

func (o Outcome) IsSuccess() bool  { return o.Status == StatusSuccess }
func (o Outcome) IsFailure() bool  { return o.Status == StatusFailure }
func (o Outcome) IsDisabled() bool { return o.Status == StatusDisabled }
