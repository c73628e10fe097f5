// Package audit keeps the activity log of session events.
package audit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"salarydash/internal/platform/tables"
)

const Collection = "activity_log"

const (
	ColUsername  = "Username"
	ColAction    = "Action"
	ColTimestamp = "Timestamp"
)

var Header = []string{ColUsername, ColAction, ColTimestamp}

const (
	ActionLogin  = "Login"
	ActionLogout = "Logout"
)

type Entry struct {
	Username  string `json:"username"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

type Filter struct {
	Action   string
	Username string
}

type Recorder struct {
	store tables.Provider
	now   func() time.Time
}

func NewRecorder(store tables.Provider) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// Record appends an entry. A failed write is logged and dropped so that it
// never blocks the session event it describes.
func (r *Recorder) Record(ctx context.Context, username, action string) {
	entry := []string{username, action, r.now().UTC().Format(time.RFC3339)}
	err := r.store.EnsureCollection(ctx, Collection, Header)
	if err == nil {
		err = r.store.AppendRow(ctx, Collection, entry)
	}
	if err != nil {
		slog.Warn("activity log write failed", "user", username, "action", action, "err", err)
	}
}

// List returns matching entries newest first.
func (r *Recorder) List(ctx context.Context, filter Filter, limit, offset int) ([]Entry, int, error) {
	table, err := r.store.GetAllRows(ctx, Collection)
	if err != nil {
		return nil, 0, err
	}
	matched := make([]Entry, 0, len(table.Rows))
	for i := len(table.Rows) - 1; i >= 0; i-- {
		row := table.Rows[i]
		entry := Entry{
			Username:  strings.TrimSpace(row[ColUsername]),
			Action:    strings.TrimSpace(row[ColAction]),
			Timestamp: strings.TrimSpace(row[ColTimestamp]),
		}
		if filter.Action != "" && !strings.EqualFold(entry.Action, filter.Action) {
			continue
		}
		if filter.Username != "" && entry.Username != filter.Username {
			continue
		}
		matched = append(matched, entry)
	}

	total := len(matched)
	offset = max(offset, 0)
	if offset >= total {
		return []Entry{}, total, nil
	}
	end := total
	if limit > 0 && limit < total-offset {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}
