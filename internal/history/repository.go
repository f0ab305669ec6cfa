package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeFormat is fixed-width so created_at sorts lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Repository defines the request history operations.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	List(ctx context.Context, filter Filter) ([]Record, error)
	Clear(ctx context.Context) (int64, error)
}

// SQLiteRepository stores records in the request_history table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new request history repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a record. The ID and CreatedAt are generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, rec *Record) error {
	if rec.Action == "" || rec.GroupAddress == "" {
		return fmt.Errorf("%w: action and group address are required", ErrInvalidRecord)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	values, err := marshalList(rec.Values)
	if err != nil {
		return fmt.Errorf("marshalling values: %w", err)
	}
	messages, err := marshalList(rec.Messages)
	if err != nil {
		return fmt.Errorf("marshalling messages: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO request_history (id, action, group_address, datapoint, req_values,
		 status, messages, error, exit_code, packets, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Action, rec.GroupAddress, rec.Datapoint, values,
		rec.Status, messages, rec.Error, rec.ExitCode, rec.Packets,
		rec.Duration.Milliseconds(),
		rec.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting history record: %w", err)
	}
	return nil
}

// List returns records matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) ([]Record, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	var conditions []string
	var args []any
	if filter.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, filter.Action)
	}
	if filter.GroupAddress != "" {
		conditions = append(conditions, "group_address = ?")
		args = append(args, filter.GroupAddress)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf( //nolint:gosec // WHERE built from parameterised conditions, not user input
		`SELECT id, action, group_address, datapoint, req_values, status, messages,
		 error, exit_code, packets, duration_ms, created_at
		 FROM request_history %s ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		where,
	)
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return records, nil
}

// Clear deletes every record and returns how many were removed.
func (r *SQLiteRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM request_history")
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared rows: %w", err)
	}
	return n, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var values, messages, createdAt string
	var durationMS int64

	if err := rows.Scan(&rec.ID, &rec.Action, &rec.GroupAddress, &rec.Datapoint,
		&values, &rec.Status, &messages, &rec.Error, &rec.ExitCode, &rec.Packets,
		&durationMS, &createdAt); err != nil {
		return Record{}, fmt.Errorf("scanning history record: %w", err)
	}

	if err := json.Unmarshal([]byte(values), &rec.Values); err != nil {
		return Record{}, fmt.Errorf("decoding values of %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(messages), &rec.Messages); err != nil {
		return Record{}, fmt.Errorf("decoding messages of %s: %w", rec.ID, err)
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond

	t, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parsing history timestamp %q: %w", createdAt, err)
	}
	rec.CreatedAt = t
	return rec, nil
}

// marshalList encodes a string list as a JSON array, "[]" for nil.
func marshalList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
