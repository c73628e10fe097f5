package payroll

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Filter keeps the rows whose employee name contains search, ignoring case.
// An empty search keeps every row.
func Filter(rows []DerivedRow, search string) []DerivedRow {
	out := make([]DerivedRow, 0, len(rows))
	if search == "" {
		return append(out, rows...)
	}
	fold := cases.Fold()
	needle := fold.String(search)
	for _, row := range rows {
		if strings.Contains(fold.String(string(row.Name)), needle) {
			out = append(out, row)
		}
	}
	return out
}

// Summarize totals the given rows. Dashboards call it on the unfiltered
// result so that searching never changes the headline figures.
func Summarize(rows []DerivedRow, hasPaid bool) Totals {
	totals := Totals{Employees: len(rows)}
	var paid, pending float64
	for _, row := range rows {
		totals.MonthlySalary += row.MonthlySalary
		totals.RemainingAdvance += row.RemainingAdvance
		totals.FinalPayable += row.FinalPayable
		if row.PaidAmount != nil {
			paid += *row.PaidAmount
		}
		if row.PendingAmount != nil {
			pending += *row.PendingAmount
		}
	}
	if hasPaid {
		totals.PaidAmount = &paid
		totals.PendingAmount = &pending
	}
	return totals
}

func BreakdownByGroup(rows []DerivedRow) []Bucket {
	return breakdown(rows, func(r DerivedRow) string { return r.Group })
}

func BreakdownByArea(rows []DerivedRow) []Bucket {
	return breakdown(rows, func(r DerivedRow) string { return r.Area })
}

func breakdown(rows []DerivedRow, keyOf func(DerivedRow) string) []Bucket {
	index := map[string]int{}
	buckets := []Bucket{}
	for _, row := range rows {
		key := strings.TrimSpace(keyOf(row))
		if key == "" {
			key = "Unassigned"
		}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key})
		}
		buckets[i].Employees++
		buckets[i].FinalPayable += row.FinalPayable
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}
