package snipq

import "fmt"

// SelectorNotFoundError reports a selector with no matching node. It is the
// only error that makes the resolver try the next candidate.
type SelectorNotFoundError struct {
	Query string
}

func (e *SelectorNotFoundError) Error() string {
	return fmt.Sprintf("selector not found: %s", e.Query)
}

// InvalidLineNumberError reports a line outside the source.
type InvalidLineNumberError struct {
	Line int
}

func (e *InvalidLineNumberError) Error() string {
	return fmt.Sprintf("invalid line number %d", e.Line)
}

// UnknownOperatorError reports a call to an unknown modifier.
type UnknownOperatorError struct {
	Callee string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Callee)
}

// InvalidArgumentError reports a modifier call with the wrong number or kind
// of arguments. Index is the 0-based argument position, or -1 for arity.
type InvalidArgumentError struct {
	Callee string
	Index  int
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Callee, e.Reason)
	}
	return fmt.Sprintf("%s: argument %d: %s", e.Callee, e.Index+1, e.Reason)
}

// InvalidRangeError reports a range whose end resolves before its start.
type InvalidRangeError struct {
	Start int
	End   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end %d is before start %d", e.End, e.Start)
}
