package payroll

import "strings"

// EmployeeKey is the join key shared by every collection. It is the employee
// name with surrounding whitespace removed; case is significant.
type EmployeeKey string

func NewEmployeeKey(name string) EmployeeKey {
	return EmployeeKey(strings.TrimSpace(name))
}

func (k EmployeeKey) String() string {
	return string(k)
}

type EmployeeRecord struct {
	Name          EmployeeKey `json:"empName"`
	DateOfJoining string      `json:"doj"`
	Group         string      `json:"group"`
	Department    string      `json:"department"`
	Area          string      `json:"area"`
	NetSalaryPM   float64     `json:"netSalaryPm"`
}

// AdvanceRecord is an advance ledger entry. RemainingAdvance is maintained
// outside this system and is nil when the stored cell is blank or malformed.
type AdvanceRecord struct {
	Name             EmployeeKey `json:"empName"`
	AmountTaken      float64     `json:"advanceTaken"`
	DateTaken        string      `json:"advanceDate"`
	RemainingAdvance *float64    `json:"remainingAdvance"`
}

type PayrollInputRecord struct {
	Month       string      `json:"month"`
	Name        EmployeeKey `json:"empName"`
	WorkingDays float64     `json:"workingDays"`
	PaidAmount  *float64    `json:"paidAmount,omitempty"`
}

// PeriodInput is the monthly input of one month. HasPaid is set when the
// source collection carries a Paid Amount column.
type PeriodInput struct {
	Month   string
	Records []PayrollInputRecord
	HasPaid bool
}

type DerivedRow struct {
	Name             EmployeeKey `json:"empName"`
	DateOfJoining    string      `json:"doj"`
	Group            string      `json:"group"`
	Department       string      `json:"department"`
	Area             string      `json:"area"`
	NetSalaryPM      float64     `json:"netSalaryPm"`
	WorkingDays      float64     `json:"workingDays"`
	PerDaySalary     float64     `json:"perDaySalary"`
	MonthlySalary    float64     `json:"monthlySalary"`
	RemainingAdvance float64     `json:"remainingAdvance"`
	FinalPayable     float64     `json:"finalPayable"`
	PaidAmount       *float64    `json:"paidAmount,omitempty"`
	PendingAmount    *float64    `json:"pendingAmount,omitempty"`
}

type Result struct {
	Month    string           `json:"month"`
	Rows     []DerivedRow     `json:"rows"`
	HasPaid  bool             `json:"hasPaid"`
	Warnings []JoinGapWarning `json:"warnings"`
}

type Totals struct {
	Employees        int      `json:"employees"`
	MonthlySalary    float64  `json:"monthlySalary"`
	RemainingAdvance float64  `json:"remainingAdvance"`
	FinalPayable     float64  `json:"finalPayable"`
	PaidAmount       *float64 `json:"paidAmount,omitempty"`
	PendingAmount    *float64 `json:"pendingAmount,omitempty"`
}

// Bucket is one slice of a breakdown chart.
type Bucket struct {
	Key          string  `json:"key"`
	Employees    int     `json:"employees"`
	FinalPayable float64 `json:"finalPayable"`
}
