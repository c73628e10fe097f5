package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"salarydash/internal/domain/auth"
	"salarydash/internal/platform/render"
	"salarydash/internal/platform/tables"
)

// Service runs derivation for a month on behalf of a signed-in session. Each
// call reloads all three collections; nothing is cached between calls.
type Service struct {
	loader    *Loader
	store     tables.Provider
	renderers map[string]render.Renderer
}

func NewService(store tables.Provider, renderers ...render.Renderer) *Service {
	byFormat := make(map[string]render.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &Service{loader: NewLoader(store), store: store, renderers: byFormat}
}

func (s *Service) Loader() *Loader {
	return s.loader
}

type Dashboard struct {
	Month    string           `json:"month"`
	Search   string           `json:"search"`
	HasPaid  bool             `json:"hasPaid"`
	Rows     []DerivedRow     `json:"rows"`
	Totals   Totals           `json:"totals"`
	ByGroup  []Bucket         `json:"byGroup"`
	ByArea   []Bucket         `json:"byArea"`
	Warnings []JoinGapWarning `json:"warnings"`
}

type ExportFile struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Derive loads the sources and derives the payroll for month. Schema problems
// in any source are reported before the join runs.
func (s *Service) Derive(ctx context.Context, month string) (Result, error) {
	master, err := s.loader.LoadEmployeeMaster(ctx)
	if err != nil {
		return Result{}, err
	}
	advances, err := s.loader.LoadAdvanceLedger(ctx)
	if err != nil {
		return Result{}, err
	}
	period, err := s.loader.LoadPeriodInput(ctx, month)
	if err != nil {
		return Result{}, err
	}
	result, err := Derive(master, period, advances)
	if err != nil {
		return Result{}, err
	}
	for _, w := range result.Warnings {
		slog.Debug("payroll join gap", "month", month, "kind", w.Kind, "employee", string(w.Employee))
	}
	return result, nil
}

func (s *Service) Dashboard(ctx context.Context, session auth.Session, month, search string) (Dashboard, error) {
	if err := authorize(session, auth.PermPayrollRead); err != nil {
		return Dashboard{}, err
	}
	result, err := s.Derive(ctx, month)
	if err != nil {
		return Dashboard{}, err
	}
	filtered := Filter(result.Rows, search)
	return Dashboard{
		Month:    month,
		Search:   search,
		HasPaid:  result.HasPaid,
		Rows:     filtered,
		Totals:   Summarize(result.Rows, result.HasPaid),
		ByGroup:  BreakdownByGroup(filtered),
		ByArea:   BreakdownByArea(filtered),
		Warnings: result.Warnings,
	}, nil
}

// Export renders the filtered rows of month in the requested format.
func (s *Service) Export(ctx context.Context, session auth.Session, month, search, format string) (ExportFile, error) {
	if err := authorize(session, auth.PermPayrollExport); err != nil {
		return ExportFile{}, err
	}
	renderer, ok := s.renderers[strings.ToLower(format)]
	if !ok {
		return ExportFile{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	result, err := s.Derive(ctx, month)
	if err != nil {
		return ExportFile{}, err
	}
	rows := Filter(result.Rows, search)

	columns := ExportColumns(result.HasPaid)
	doc := render.Document{
		Title:   "Salary Report - " + month,
		Columns: columns,
		Rows:    make([][]string, 0, len(rows)),
		Numeric: make([]bool, len(columns)),
	}
	for i, col := range columns {
		doc.Numeric[i] = isAmountColumn(col)
	}
	for _, row := range rows {
		doc.Rows = append(doc.Rows, row.ExportValues(result.HasPaid))
	}

	body, err := renderer.Render(doc)
	if err != nil {
		return ExportFile{}, err
	}
	return ExportFile{
		FileName:    fmt.Sprintf("salary-report-%s.%s", month, renderer.Format()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

// SaveSnapshot overwrites the collection named after month with the full
// derived table and returns the number of rows written.
func (s *Service) SaveSnapshot(ctx context.Context, session auth.Session, month string) (int, error) {
	if err := authorize(session, auth.PermPayrollSnapshot); err != nil {
		return 0, err
	}
	result, err := s.Derive(ctx, month)
	if err != nil {
		return 0, err
	}
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, row.SnapshotValues(result.HasPaid))
	}
	if err := s.store.ReplaceRows(ctx, month, SnapshotColumns(result.HasPaid), rows); err != nil {
		return 0, err
	}
	slog.Info("payroll snapshot saved", "month", month, "rows", len(rows), "user", session.Username)
	return len(rows), nil
}

func authorize(session auth.Session, perm string) error {
	if session.Username == "" {
		return auth.ErrUnauthenticated
	}
	if !auth.HasPermission(session.Role, perm) {
		return auth.ErrForbidden
	}
	return nil
}

func isAmountColumn(col string) bool {
	switch col {
	case ColMonthlySalary, ColRemainingAdvance, ColFinalPayable, ColPaidAmount, ColPendingAmount:
		return true
	}
	return false
}
