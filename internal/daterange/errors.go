package daterange

import "fmt"

// Kind classifies why a date range request was rejected.
type Kind string

const (
	MissingParameters   Kind = "MissingParameters"
	InvalidFormat       Kind = "InvalidFormat"
	InvalidDay          Kind = "InvalidDay"
	InvalidMonth        Kind = "InvalidMonth"
	InvalidYear         Kind = "InvalidYear"
	InvalidCalendarDate Kind = "InvalidCalendarDate"
	InvalidRange        Kind = "InvalidRange"
	RangeTooLarge       Kind = "RangeTooLarge"
)

// IsParsing reports whether k is one of the field bound violations
// (day, month or year out of range).
func (k Kind) IsParsing() bool {
	return k == InvalidDay || k == InvalidMonth || k == InvalidYear
}

// Error is a client input error produced while validating a date range.
//
// Fields:
//   - Kind: the classification used by the API layer to pick a response body.
//   - Field: "start" or "end" when the error is tied to one parameter.
//   - Value: the offending raw input, if any.
//   - Detail: human readable description of the violation.
//   - RequestedDays: rounded span in days (RangeTooLarge only).
type Error struct {
	Kind          Kind
	Field         string
	Value         string
	Detail        string
	RequestedDays int
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s (%s=%q): %s", e.Kind, e.Field, e.Value, e.Detail)
}
