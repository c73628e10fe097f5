package tables

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	valueInputRaw = "RAW"
	insertRows    = "INSERT_ROWS"
)

// Sheets maps every collection onto a worksheet of one spreadsheet. Row 1
// of a worksheet is its header. Row handles are zero-based sheet row indexes,
// so they go stale when another writer deletes rows above them.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewSheets(ctx context.Context, credentialsFile, spreadsheetID string) (*Sheets, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, &ConnectionError{Op: "connect", Err: err}
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *Sheets) EnsureCollection(ctx context.Context, name string, header []string) error {
	_, ok, err := s.sheetID(ctx, name)
	if err != nil {
		return wrap("ensure", name, err)
	}
	if ok {
		return nil
	}
	if err := s.addSheet(ctx, name); err != nil {
		return wrap("ensure", name, err)
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, a1(name)+"!A1", &sheets.ValueRange{
		Values: [][]interface{}{toCells(header)},
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	return wrap("ensure", name, err)
}

func (s *Sheets) GetAllRows(ctx context.Context, collection string) (Table, error) {
	values, ok, err := s.values(ctx, collection)
	if err != nil {
		return Table{}, wrap("read", collection, err)
	}
	if !ok || len(values) == 0 {
		return Table{}, nil
	}
	return buildTable(values[0], values[1:]), nil
}

func (s *Sheets) AppendRow(ctx context.Context, collection string, values []string) error {
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, a1(collection), &sheets.ValueRange{
		Values: [][]interface{}{toCells(values)},
	}).ValueInputOption(valueInputRaw).InsertDataOption(insertRows).Context(ctx).Do()
	return wrap("append", collection, err)
}

func (s *Sheets) FindRow(ctx context.Context, collection, column, key string) (RowHandle, bool, error) {
	values, ok, err := s.values(ctx, collection)
	if err != nil {
		return RowHandle{}, false, wrap("find", collection, err)
	}
	if !ok || len(values) == 0 {
		return RowHandle{}, false, nil
	}
	idx := columnIndex(values[0], column)
	for i := 1; i < len(values); i++ {
		if cellMatches(values[i], idx, key) {
			return RowHandle{Collection: collection, Ref: int64(i)}, true, nil
		}
	}
	return RowHandle{}, false, nil
}

func (s *Sheets) DeleteRow(ctx context.Context, handle RowHandle) error {
	id, ok, err := s.sheetID(ctx, handle.Collection)
	if err != nil {
		return wrap("delete", handle.Collection, err)
	}
	if !ok || handle.Ref < 1 {
		return ErrRowNotFound
	}
	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    id,
					Dimension:  "ROWS",
					StartIndex: handle.Ref,
					EndIndex:   handle.Ref + 1,
				},
			},
		}},
	}).Context(ctx).Do()
	return wrap("delete", handle.Collection, err)
}

func (s *Sheets) ReplaceRows(ctx context.Context, collection string, header []string, rows [][]string) error {
	_, ok, err := s.sheetID(ctx, collection)
	if err != nil {
		return wrap("replace", collection, err)
	}
	if !ok {
		if err := s.addSheet(ctx, collection); err != nil {
			return wrap("replace", collection, err)
		}
	} else if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, a1(collection), &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return wrap("replace", collection, err)
	}

	grid := make([][]interface{}, 0, len(rows)+1)
	grid = append(grid, toCells(header))
	for _, values := range rows {
		grid = append(grid, toCells(values))
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, a1(collection)+"!A1", &sheets.ValueRange{
		Values: grid,
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	return wrap("replace", collection, err)
}

func (s *Sheets) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return wrap("ping", "", err)
}

func (s *Sheets) sheetID(ctx context.Context, title string) (int64, bool, error) {
	spreadsheet, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, false, err
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties.SheetId, true, nil
		}
	}
	return 0, false, nil
}

func (s *Sheets) addSheet(ctx context.Context, title string) error {
	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	return err
}

func (s *Sheets) values(ctx context.Context, collection string) ([][]string, bool, error) {
	_, ok, err := s.sheetID(ctx, collection)
	if err != nil || !ok {
		return nil, ok, err
	}
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, a1(collection)).Context(ctx).Do()
	if err != nil {
		return nil, true, err
	}
	out := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		out = append(out, row)
	}
	return out, true, nil
}

// a1 quotes a worksheet title for use in an A1 range.
func a1(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
