package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"

	"github.com/staydesk/backoffice-api/internal/models"
)

// RecordStore is the storage port every entity service goes through.
// Records are addressed by collection name and integer id; field names are
// the canonical camelCase names used on the wire.
type RecordStore interface {
	// List fills dest (pointer to slice) with every record, oldest first
	List(ctx context.Context, coll string, dest interface{}) error
	// Recent fills dest with at most limit records, newest first
	Recent(ctx context.Context, coll string, limit int, dest interface{}) error
	Get(ctx context.Context, coll string, id int64, dest interface{}) error
	// Create stores fields and returns the id the store assigned
	Create(ctx context.Context, coll string, fields models.Fields) (int64, error)
	// Update shallow-merges fields into the record
	Update(ctx context.Context, coll string, id int64, fields models.Fields) error
	Delete(ctx context.Context, coll string, id int64) error
}

// PostgresStore implements RecordStore on PostgreSQL
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a record store over db
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// List returns all rows of the collection ordered by id
func (s *PostgresStore) List(ctx context.Context, coll string, dest interface{}) error {
	c, err := lookup(coll)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", c.selectList(), c.table)
	if err := s.db.SelectContext(ctx, dest, query); err != nil {
		return &BackendError{Op: "list", Collection: coll, Err: err}
	}
	return nil
}

// Recent returns the newest rows of the collection
func (s *PostgresStore) Recent(ctx context.Context, coll string, limit int, dest interface{}) error {
	c, err := lookup(coll)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id DESC LIMIT $1", c.selectList(), c.table)
	if err := s.db.SelectContext(ctx, dest, query, limit); err != nil {
		return &BackendError{Op: "recent", Collection: coll, Err: err}
	}
	return nil
}

// Get loads a single row by id
func (s *PostgresStore) Get(ctx context.Context, coll string, id int64, dest interface{}) error {
	c, err := lookup(coll)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", c.selectList(), c.table)
	if err := s.db.GetContext(ctx, dest, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %d: %w", coll, id, ErrNotFound)
		}
		return &BackendError{Op: "get", Collection: coll, Err: err}
	}
	return nil
}

// Create inserts a row and returns its generated id
func (s *PostgresStore) Create(ctx context.Context, coll string, fields models.Fields) (int64, error) {
	c, err := lookup(coll)
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, ErrNoFields
	}

	cols, args, err := c.bind(fields)
	if err != nil {
		return 0, err
	}
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		c.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, c.writeError("create", coll, err)
	}
	return id, nil
}

// Update writes only the given fields
func (s *PostgresStore) Update(ctx context.Context, coll string, id int64, fields models.Fields) error {
	c, err := lookup(coll)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return ErrNoFields
	}

	cols, args, err := c.bind(fields)
	if err != nil {
		return err
	}
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		c.table, strings.Join(sets, ", "), len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return c.writeError("update", coll, err)
	}
	return checkAffected(result, "update", coll, id)
}

// Delete removes a row
func (s *PostgresStore) Delete(ctx context.Context, coll string, id int64) error {
	c, err := lookup(coll)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", c.table)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return &BackendError{Op: "delete", Collection: coll, Err: err}
	}
	return checkAffected(result, "delete", coll, id)
}

// bind resolves fields to columns in sorted field order so generated SQL is stable
func (c collection) bind(fields models.Fields) ([]string, []interface{}, error) {
	keys := fields.Keys()
	cols := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		if k == "id" {
			continue
		}
		col, ok := c.column(k)
		if !ok {
			return nil, nil, fmt.Errorf("%w %q for %s", ErrUnknownField, k, c.table)
		}
		cols = append(cols, col)
		args = append(args, fields[k])
	}
	if len(cols) == 0 {
		return nil, nil, ErrNoFields
	}
	return cols, args, nil
}

// uniqueViolation is the SQLSTATE for unique_violation
const uniqueViolation = "23505"

// conflictKey pulls the column out of "Key (number)=(101) already exists."
var conflictKey = regexp.MustCompile(`Key \(([a-z_]+)\)=`)

// writeError separates constraint violations caused by the request from
// failures of the database itself
func (c collection) writeError(op, coll string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		conflict := &ConflictError{Collection: coll, Err: err}
		if m := conflictKey.FindStringSubmatch(pqErr.Detail); m != nil {
			conflict.Field = c.field(m[1])
		}
		return conflict
	}
	return &BackendError{Op: op, Collection: coll, Err: err}
}

func checkAffected(result sql.Result, op, coll string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return &BackendError{Op: op, Collection: coll, Err: err}
	}
	if rows == 0 {
		return fmt.Errorf("%s %d: %w", coll, id, ErrNotFound)
	}
	return nil
}
