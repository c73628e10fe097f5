package shared

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"salarydash/internal/domain/auth"
	"salarydash/internal/domain/core"
	"salarydash/internal/domain/payroll"
	"salarydash/internal/platform/render"
	"salarydash/internal/platform/tables"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"schema", &payroll.SchemaError{Collection: payroll.CollectionMaster, Column: payroll.ColNetSalary, Employee: "Ravi"}, http.StatusUnprocessableEntity, "schema_error"},
		{"connection", fmt.Errorf("load: %w", &tables.ConnectionError{Op: "read", Err: errors.New("401")}), http.StatusBadGateway, "store_unavailable"},
		{"render", &render.RenderError{Format: "pdf", Err: errors.New("boom")}, http.StatusInternalServerError, "render_failed"},
		{"forbidden", auth.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unauthenticated", auth.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
		{"not found", core.ErrEmployeeNotFound, http.StatusNotFound, "employee_not_found"},
		{"month", core.ErrInvalidMonth, http.StatusBadRequest, "validation_error"},
		{"format", fmt.Errorf("%w: %q", payroll.ErrUnknownFormat, "csv"), http.StatusBadRequest, "validation_error"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tc.code+`"`)
		})
	}
}
