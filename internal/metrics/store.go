package metrics

import (
	"context"
	"database/sql"
	"time"
)

// AutofillMetric records metadata for a single auto-fill attempt.
type AutofillMetric struct {
	Model     string
	Status    string
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m AutofillMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO autofill_metrics (model, status, latency_ms, timestamp) VALUES (?, ?, ?, ?)`,
		m.Model, m.Status, m.LatencyMS, ts,
	)
	return err
}

// DailyUsage represents auto-fill totals for a single day.
type DailyUsage struct {
	Date         string `json:"date"`
	Attempts     int    `json:"attempts"`
	Failures     int    `json:"failures"`
	AvgLatencyMS int64  `json:"avgLatencyMs"`
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx,
		`SELECT date(timestamp) AS day,
		        COUNT(*),
		        SUM(CASE WHEN status != 'ok' THEN 1 ELSE 0 END),
		        CAST(AVG(latency_ms) AS INTEGER)
		   FROM autofill_metrics
		  WHERE timestamp >= ?
		  GROUP BY day
		  ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		var avg sql.NullInt64
		if err := rows.Scan(&u.Date, &u.Attempts, &u.Failures, &avg); err != nil {
			return nil, err
		}
		if avg.Valid {
			u.AvgLatencyMS = avg.Int64
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) error {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM autofill_metrics WHERE timestamp < ?`, threshold)
	return err
}
