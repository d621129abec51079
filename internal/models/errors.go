package models

import "fmt"

// ContractViolationError reports provider data the pipeline cannot interpret,
// such as a negative price or an out-of-range rating. It is the only error
// class that aborts a whole recommendation request; everything else degrades
// per candidate.
type ContractViolationError struct {
	Field  string
	Reason string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("provider contract violation: %s %s", e.Field, e.Reason)
}
