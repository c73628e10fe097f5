package payroll

import "math"

type gapAction int

const (
	gapFatal gapAction = iota
	gapDefault
)

// FieldPolicy decides what happens when a numeric field has no value after
// the join: either the field defaults or derivation stops.
type FieldPolicy struct {
	Collection string
	action     gapAction
	fallback   float64
}

var fieldPolicies = map[string]FieldPolicy{
	ColNetSalary:        {Collection: CollectionMaster, action: gapFatal},
	ColRemainingAdvance: {Collection: CollectionAdvances, action: gapDefault, fallback: 0},
	ColPaidAmount:       {Collection: CollectionPeriodInput, action: gapDefault, fallback: 0},
}

// fillMissingNumeric resolves a possibly absent numeric value. filled reports
// whether the fallback was used.
func fillMissingNumeric(field string, value *float64, employee EmployeeKey) (result float64, filled bool, err error) {
	if value != nil && !math.IsNaN(*value) && !math.IsInf(*value, 0) {
		return *value, false, nil
	}
	policy, ok := fieldPolicies[field]
	if !ok || policy.action == gapFatal {
		return 0, false, &SchemaError{
			Collection: policy.Collection,
			Column:     field,
			Employee:   employee,
			Reason:     "has no value",
		}
	}
	return policy.fallback, true, nil
}
