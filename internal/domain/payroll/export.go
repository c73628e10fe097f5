package payroll

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func ExportColumns(hasPaid bool) []string {
	cols := []string{ColEmpName, ColArea, ColGroup, ColDepartment, ColMonthlySalary, ColRemainingAdvance, ColFinalPayable}
	if hasPaid {
		cols = append(cols, ColPaidAmount, ColPendingAmount)
	}
	return cols
}

func (r DerivedRow) ExportValues(hasPaid bool) []string {
	values := []string{
		string(r.Name),
		r.Area,
		r.Group,
		r.Department,
		FormatAmount(r.MonthlySalary),
		FormatAmount(r.RemainingAdvance),
		FormatAmount(r.FinalPayable),
	}
	if hasPaid {
		values = append(values, formatOptional(r.PaidAmount), formatOptional(r.PendingAmount))
	}
	return values
}

// SnapshotColumns is the header of a saved month: every derived field.
func SnapshotColumns(hasPaid bool) []string {
	cols := []string{
		ColEmpName, ColDateOfJoining, ColGroup, ColDepartment, ColArea, ColNetSalary,
		ColWorkingDays, ColPerDaySalary, ColMonthlySalary, ColRemainingAdvance, ColFinalPayable,
	}
	if hasPaid {
		cols = append(cols, ColPaidAmount, ColPendingAmount)
	}
	return cols
}

func (r DerivedRow) SnapshotValues(hasPaid bool) []string {
	values := []string{
		string(r.Name),
		r.DateOfJoining,
		r.Group,
		r.Department,
		r.Area,
		FormatAmount(r.NetSalaryPM),
		strconv.FormatFloat(r.WorkingDays, 'f', -1, 64),
		FormatAmount(r.PerDaySalary),
		FormatAmount(r.MonthlySalary),
		FormatAmount(r.RemainingAdvance),
		FormatAmount(r.FinalPayable),
	}
	if hasPaid {
		values = append(values, formatOptional(r.PaidAmount), formatOptional(r.PendingAmount))
	}
	return values
}

// FormatAmount renders a currency value with two decimals. Derivation keeps
// full precision; rounding happens only here.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatAmount(*v)
}
