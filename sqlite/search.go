package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/localmind"
	"github.com/google/uuid"
)

var _ localmind.SearchLog = (*SearchLog)(nil)

// SearchLog implements localmind.SearchLog using SQLite.
type SearchLog struct {
	db *DB
}

// NewSearchLog creates a new SearchLog.
func NewSearchLog(db *DB) *SearchLog {
	return &SearchLog{db: db}
}

// RecordSearch stores a search event.
func (l *SearchLog) RecordSearch(ctx context.Context, event *localmind.SearchEvent) error {
	if event.Query == "" {
		return localmind.Errorf(localmind.EINVALID, "search query required")
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx,
		"INSERT INTO searches (id, query, results, searched_at) VALUES (?, ?, ?, ?)",
		event.ID, event.Query, event.Results, formatTime(event.Timestamp))
	return err
}

// RecentSearches returns at most n events, newest first.
func (l *SearchLog) RecentSearches(ctx context.Context, n int) ([]*localmind.SearchEvent, error) {
	events := []*localmind.SearchEvent{}
	if n <= 0 {
		return events, nil
	}

	rows, err := l.db.QueryContext(ctx,
		"SELECT id, query, results, searched_at FROM searches ORDER BY searched_at DESC, rowid DESC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e localmind.SearchEvent
		var searchedAt string
		if err := rows.Scan(&e.ID, &e.Query, &e.Results, &searchedAt); err != nil {
			return nil, err
		}
		if e.Timestamp, err = parseTime(searchedAt, "searched_at"); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}

	return events, rows.Err()
}

// CountSearches returns the total number of recorded searches.
func (l *SearchLog) CountSearches(ctx context.Context) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM searches").Scan(&n)
	return n, err
}
