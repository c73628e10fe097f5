// Package core holds the administrative edits to the source collections.
package core

import (
	"context"
	"errors"
	"log/slog"

	"salarydash/internal/domain/auth"
	"salarydash/internal/domain/payroll"
	"salarydash/internal/platform/tables"
)

// Service appends to and deletes from the source collections. Writes are
// positional and assume the stored header is in the default column order.
// Two admins editing at once may interleave; nothing serializes them.
type Service struct {
	store  tables.Provider
	loader *payroll.Loader
}

func NewService(store tables.Provider) *Service {
	return &Service{store: store, loader: payroll.NewLoader(store)}
}

func (s *Service) ListEmployees(ctx context.Context, session auth.Session) ([]payroll.EmployeeRecord, error) {
	if session.Username == "" {
		return nil, auth.ErrUnauthenticated
	}
	return s.loader.LoadEmployeeMaster(ctx)
}

func (s *Service) AddEmployee(ctx context.Context, session auth.Session, emp Employee) error {
	if err := auth.RequireAdmin(session); err != nil {
		return err
	}
	if err := s.append(ctx, payroll.CollectionMaster, payroll.MasterHeader, emp.values()); err != nil {
		return err
	}
	slog.Info("employee added", "employee", emp.Name, "user", session.Username)
	return nil
}

// DeleteEmployee removes the first master row whose name matches. Rows in
// the advance ledger and monthly input are left alone.
func (s *Service) DeleteEmployee(ctx context.Context, session auth.Session, name string) error {
	if err := auth.RequireAdmin(session); err != nil {
		return err
	}
	key := payroll.NewEmployeeKey(name)
	if err := s.store.EnsureCollection(ctx, payroll.CollectionMaster, payroll.MasterHeader); err != nil {
		return err
	}
	handle, ok, err := s.store.FindRow(ctx, payroll.CollectionMaster, payroll.ColEmpName, string(key))
	if err != nil {
		return err
	}
	if !ok {
		return ErrEmployeeNotFound
	}
	if err := s.store.DeleteRow(ctx, handle); err != nil {
		if errors.Is(err, tables.ErrRowNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	slog.Info("employee deleted", "employee", string(key), "user", session.Username)
	return nil
}

func (s *Service) AddAdvance(ctx context.Context, session auth.Session, adv Advance) error {
	if err := auth.RequireAdmin(session); err != nil {
		return err
	}
	return s.append(ctx, payroll.CollectionAdvances, payroll.AdvanceHeader, adv.values())
}

func (s *Service) RecordWorkingDays(ctx context.Context, session auth.Session, entry PeriodEntry) error {
	if err := auth.RequireAdmin(session); err != nil {
		return err
	}
	if !payroll.ValidMonth(entry.Month) {
		return ErrInvalidMonth
	}
	return s.append(ctx, payroll.CollectionPeriodInput, payroll.PeriodInputHeader, entry.values())
}

func (s *Service) append(ctx context.Context, collection string, header, values []string) error {
	if err := s.store.EnsureCollection(ctx, collection, header); err != nil {
		return err
	}
	return s.store.AppendRow(ctx, collection, values)
}
