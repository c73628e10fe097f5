package payroll

import (
	"errors"
	"fmt"
)

var ErrUnknownFormat = errors.New("unknown export format")

// SchemaError reports a required column that is absent from a collection, or
// a required value that is blank or malformed. It aborts derivation.
type SchemaError struct {
	Collection string
	Column     string
	Employee   EmployeeKey
	Reason     string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("collection %q: column %q", e.Collection, e.Column)
	if e.Employee != "" {
		msg += fmt.Sprintf(" for employee %q", string(e.Employee))
	}
	reason := e.Reason
	if reason == "" {
		reason = "is missing"
	}
	return msg + " " + reason
}

// JoinGapWarning records a row kept with a filled default because its
// counterpart in another collection was missing or blank.
type JoinGapWarning struct {
	Kind     string      `json:"kind"`
	Employee EmployeeKey `json:"employee"`
	Field    string      `json:"field,omitempty"`
	Message  string      `json:"message"`
}

func (w JoinGapWarning) Error() string {
	return w.Message
}
