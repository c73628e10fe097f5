package payroll

// Collections in the table store.
const (
	CollectionMaster      = "master_data"
	CollectionAdvances    = "advance_ledger"
	CollectionPeriodInput = "monthly_input"
)

// Column names as they appear in collection headers, after trimming.
const (
	ColEmpName          = "Emp Name"
	ColDateOfJoining    = "DOJ"
	ColGroup            = "Group"
	ColDepartment       = "Department"
	ColArea             = "Area"
	ColNetSalary        = "Net Salary PM"
	ColAdvanceTaken     = "Advance Taken"
	ColAdvanceDate      = "Advance Date"
	ColRemainingAdvance = "Remaining Advance"
	ColMonth            = "Month"
	ColWorkingDays      = "Working Days"
	ColPaidAmount       = "Paid Amount"
	ColPerDaySalary     = "Per Day Salary"
	ColMonthlySalary    = "Monthly Salary"
	ColFinalPayable     = "Final Payable"
	ColPendingAmount    = "Pending Amount"
)

// SalaryDivisor is the fixed day count a monthly salary is spread over,
// regardless of the calendar length of the month.
const SalaryDivisor = 30

const MaxWorkingDays = 31

// Appends are positional, so these orders must match the stored headers.
var (
	MasterHeader      = []string{ColEmpName, ColDateOfJoining, ColGroup, ColDepartment, ColArea, ColNetSalary}
	AdvanceHeader     = []string{ColEmpName, ColAdvanceTaken, ColAdvanceDate, ColRemainingAdvance}
	PeriodInputHeader = []string{ColMonth, ColEmpName, ColWorkingDays, ColPaidAmount}
)

var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func ValidMonth(month string) bool {
	for _, m := range Months {
		if m == month {
			return true
		}
	}
	return false
}

const (
	WarningMissingAdvance   = "missing_advance"
	WarningBlankAdvance     = "blank_remaining_advance"
	WarningBlankPaid        = "blank_paid_amount"
	WarningDuplicateMaster  = "duplicate_master"
	WarningDuplicateAdvance = "duplicate_advance"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)
