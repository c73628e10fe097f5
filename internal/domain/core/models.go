package core

import (
	"strconv"

	"salarydash/internal/domain/payroll"
)

type Employee struct {
	Name          string  `json:"empName" validate:"required,max=120"`
	DateOfJoining string  `json:"doj" validate:"omitempty,datetime=2006-01-02"`
	Group         string  `json:"group" validate:"max=60"`
	Department    string  `json:"department" validate:"max=60"`
	Area          string  `json:"area" validate:"max=60"`
	NetSalaryPM   float64 `json:"netSalaryPm" validate:"gte=0"`
}

// values lays the employee out in master header order.
func (e Employee) values() []string {
	return []string{
		string(payroll.NewEmployeeKey(e.Name)),
		e.DateOfJoining,
		e.Group,
		e.Department,
		e.Area,
		formatNumber(e.NetSalaryPM),
	}
}

// Advance is a new ledger entry. RemainingAdvance defaults to AmountTaken.
type Advance struct {
	Name             string   `json:"empName" validate:"required,max=120"`
	AmountTaken      float64  `json:"advanceTaken" validate:"gt=0"`
	DateTaken        string   `json:"advanceDate" validate:"required,datetime=2006-01-02"`
	RemainingAdvance *float64 `json:"remainingAdvance" validate:"omitempty,gte=0"`
}

func (a Advance) values() []string {
	remaining := a.AmountTaken
	if a.RemainingAdvance != nil {
		remaining = *a.RemainingAdvance
	}
	return []string{
		string(payroll.NewEmployeeKey(a.Name)),
		formatNumber(a.AmountTaken),
		a.DateTaken,
		formatNumber(remaining),
	}
}

// PeriodEntry is one monthly input row.
type PeriodEntry struct {
	Month       string   `json:"month"`
	Name        string   `json:"empName" validate:"required,max=120"`
	WorkingDays float64  `json:"workingDays" validate:"gte=0,lte=31"`
	PaidAmount  *float64 `json:"paidAmount" validate:"omitempty,gte=0"`
}

func (p PeriodEntry) values() []string {
	paid := ""
	if p.PaidAmount != nil {
		paid = formatNumber(*p.PaidAmount)
	}
	return []string{p.Month, string(payroll.NewEmployeeKey(p.Name)), formatNumber(p.WorkingDays), paid}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
