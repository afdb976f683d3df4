package models

type DecisionKind int

const (
	DecisionContinue DecisionKind = iota
	DecisionSuccess
	DecisionFatal
)

func (kind DecisionKind) String() string {
	switch kind {
	case DecisionSuccess:
		return "success"
	case DecisionFatal:
		return "fatal"
	default:
		return "continue"
	}
}

// Decision is the classified outcome of a single status poll.
// Only the field matching Kind is meaningful: Response for success,
// Reason for continue and Err for fatal.
type Decision struct {
	Kind     DecisionKind
	Response *StatusResponse
	Reason   string
	Err      error
}

func Success(response *StatusResponse) Decision {
	return Decision{Kind: DecisionSuccess, Response: response}
}

func Continue(reason string) Decision {
	return Decision{Kind: DecisionContinue, Reason: reason}
}

func Fatal(err error) Decision {
	return Decision{Kind: DecisionFatal, Err: err}
}
