package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nexa-app/nexa/backend/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id         TEXT PRIMARY KEY,
	collection TEXT NOT NULL,
	owner_id   TEXT NOT NULL,
	data       TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_collection_owner ON records(collection, owner_id);
`

// Store implements store.RecordStore on a single SQLite documents table.
// Each record is kept as a JSON payload so collections stay schemaless;
// ordering uses json_extract over the requested field.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs the migration.
// WAL mode and a busy timeout keep concurrent readers and the single
// writer from tripping over each other.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migration: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a record, assigning "id" and "created_at" when the caller
// did not provide them, and returns the stored row.
func (s *Store) Insert(ctx context.Context, collection string, rec store.Record) (store.Record, error) {
	stored := store.Record{}
	for k, v := range rec {
		stored[k] = v
	}

	id := stored.String("id")
	if id == "" {
		id = uuid.NewString()
		stored["id"] = id
	}

	createdAt := stored.String("created_at")
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339Nano)
		stored["created_at"] = createdAt
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (id, collection, owner_id, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, collection, stored.String("user_id"), string(payload), createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	return stored, nil
}

// SelectByOwner returns the owner's records in the requested order. A zero
// limit means no limit; an empty order field sorts on insertion time.
func (s *Store) SelectByOwner(ctx context.Context, collection, ownerID string, order store.OrderBy, limit int) ([]store.Record, error) {
	orderExpr := "created_at"
	if order.Field != "" {
		if !validOrderField(order.Field) {
			return nil, fmt.Errorf("invalid order field %q", order.Field)
		}
		orderExpr = fmt.Sprintf("json_extract(data, '$.%s')", order.Field)
	}
	direction := "ASC"
	if order.Descending {
		direction = "DESC"
	}

	query := fmt.Sprintf(
		`SELECT data FROM records WHERE collection = ? AND owner_id = ? ORDER BY %s %s`,
		orderExpr, direction,
	)
	args := []any{collection, ownerID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", collection, err)
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec := store.Record{}
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}

	return records, nil
}

// Update merges the patch into the stored payload of the addressed record.
func (s *Store) Update(ctx context.Context, collection, id string, patch store.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	var payload string
	err = tx.QueryRowContext(ctx,
		`SELECT data FROM records WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read record %s: %w", id, err)
	}

	rec := store.Record{}
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	for k, v := range patch {
		rec[k] = v
	}

	updated, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE records SET data = ? WHERE collection = ? AND id = ?`,
		string(updated), collection, id,
	); err != nil {
		return fmt.Errorf("failed to update record %s: %w", id, err)
	}

	return tx.Commit()
}

// Delete removes the addressed record.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// validOrderField restricts order fields to snake_case identifiers so they
// can be spliced into the json_extract path.
func validOrderField(field string) bool {
	for _, r := range field {
		if r != '_' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return field != ""
}
