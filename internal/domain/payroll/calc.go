package payroll

import "fmt"

// Derive joins the period input with the employee master and the advance
// ledger. Rows follow period input order. A name present more than once in
// the master or the ledger fans out into one row per match. It has no side
// effects, so the same inputs always yield the same result.
func Derive(master []EmployeeRecord, period PeriodInput, advances []AdvanceRecord) (Result, error) {
	masterByKey, masterDups := indexEmployees(master)
	advancesByKey, advanceDups := indexAdvances(advances)

	result := Result{
		Month:    period.Month,
		Rows:     make([]DerivedRow, 0, len(period.Records)),
		HasPaid:  period.HasPaid,
		Warnings: []JoinGapWarning{},
	}
	for _, key := range masterDups {
		result.Warnings = append(result.Warnings, JoinGapWarning{
			Kind:     WarningDuplicateMaster,
			Employee: key,
			Message:  fmt.Sprintf("employee %q appears %d times in %s", key, len(masterByKey[key]), CollectionMaster),
		})
	}
	for _, key := range advanceDups {
		result.Warnings = append(result.Warnings, JoinGapWarning{
			Kind:     WarningDuplicateAdvance,
			Employee: key,
			Message:  fmt.Sprintf("employee %q appears %d times in %s", key, len(advancesByKey[key]), CollectionAdvances),
		})
	}

	for _, input := range period.Records {
		employees := masterByKey[input.Name]
		if len(employees) == 0 {
			if _, _, err := fillMissingNumeric(ColNetSalary, nil, input.Name); err != nil {
				return Result{}, err
			}
		}

		ledger := advancesByKey[input.Name]
		if len(ledger) == 0 {
			result.Warnings = append(result.Warnings, JoinGapWarning{
				Kind:     WarningMissingAdvance,
				Employee: input.Name,
				Field:    ColRemainingAdvance,
				Message:  fmt.Sprintf("no advance ledger entry for %q, remaining advance set to 0", input.Name),
			})
			ledger = []AdvanceRecord{{Name: input.Name}}
		}

		for _, employee := range employees {
			netSalary := employee.NetSalaryPM
			net, _, err := fillMissingNumeric(ColNetSalary, &netSalary, input.Name)
			if err != nil {
				return Result{}, err
			}
			perDay := net / SalaryDivisor
			monthly := perDay * input.WorkingDays

			for _, advance := range ledger {
				remaining, filled, err := fillMissingNumeric(ColRemainingAdvance, advance.RemainingAdvance, input.Name)
				if err != nil {
					return Result{}, err
				}
				if filled && len(advancesByKey[input.Name]) > 0 {
					result.Warnings = append(result.Warnings, JoinGapWarning{
						Kind:     WarningBlankAdvance,
						Employee: input.Name,
						Field:    ColRemainingAdvance,
						Message:  fmt.Sprintf("blank remaining advance for %q, set to 0", input.Name),
					})
				}

				row := DerivedRow{
					Name:             input.Name,
					DateOfJoining:    employee.DateOfJoining,
					Group:            employee.Group,
					Department:       employee.Department,
					Area:             employee.Area,
					NetSalaryPM:      net,
					WorkingDays:      input.WorkingDays,
					PerDaySalary:     perDay,
					MonthlySalary:    monthly,
					RemainingAdvance: remaining,
					FinalPayable:     monthly - remaining,
				}
				if period.HasPaid {
					paid, filled, err := fillMissingNumeric(ColPaidAmount, input.PaidAmount, input.Name)
					if err != nil {
						return Result{}, err
					}
					if filled {
						result.Warnings = append(result.Warnings, JoinGapWarning{
							Kind:     WarningBlankPaid,
							Employee: input.Name,
							Field:    ColPaidAmount,
							Message:  fmt.Sprintf("blank paid amount for %q, set to 0", input.Name),
						})
					}
					pending := row.FinalPayable - paid
					row.PaidAmount = &paid
					row.PendingAmount = &pending
				}
				result.Rows = append(result.Rows, row)
			}
		}
	}
	return result, nil
}

func indexEmployees(master []EmployeeRecord) (map[EmployeeKey][]EmployeeRecord, []EmployeeKey) {
	index := make(map[EmployeeKey][]EmployeeRecord, len(master))
	var dups []EmployeeKey
	for _, employee := range master {
		index[employee.Name] = append(index[employee.Name], employee)
		if len(index[employee.Name]) == 2 {
			dups = append(dups, employee.Name)
		}
	}
	return index, dups
}

func indexAdvances(advances []AdvanceRecord) (map[EmployeeKey][]AdvanceRecord, []EmployeeKey) {
	index := make(map[EmployeeKey][]AdvanceRecord, len(advances))
	var dups []EmployeeKey
	for _, advance := range advances {
		index[advance.Name] = append(index[advance.Name], advance)
		if len(index[advance.Name]) == 2 {
			dups = append(dups, advance.Name)
		}
	}
	return index, dups
}
