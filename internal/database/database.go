package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var (
	// ErrStorageUnavailable is returned when no connection configuration is present.
	ErrStorageUnavailable = errors.New("storage unavailable: database is not configured")

	// ErrStorageError wraps driver-level failures.
	ErrStorageError = errors.New("storage error")
)

// DB is the connection pool handle shared by all repositories.
// Every statement passes through it so query text and duration are logged in one place.
type DB struct {
	conn *sql.DB
}

// Open creates the pool and verifies connectivity.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, ErrStorageUnavailable
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrStorageError, err)
	}
	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: connecting to database: %w", ErrStorageError, err)
	}

	utils.LogInfo("Successfully connected to the database")
	return &DB{conn: conn}, nil
}

// New wraps an already opened pool.
func New(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close releases the pool. Safe on a nil handle.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping reports whether the database answers.
func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.conn == nil {
		return ErrStorageUnavailable
	}
	return db.conn.PingContext(ctx)
}

// Execute is the parameterized query primitive: statement text plus positional parameters in, rows out.
func (db *DB) Execute(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.QueryContext(ctx, query, args...)
}

// QueryContext runs a query returning rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if db == nil || db.conn == nil {
		return nil, ErrStorageUnavailable
	}
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	return rows, logStatement(query, start, err)
}

// ExecContext runs a statement that returns no rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if db == nil || db.conn == nil {
		return nil, ErrStorageUnavailable
	}
	start := time.Now()
	res, err := db.conn.ExecContext(ctx, query, args...)
	return res, logStatement(query, start, err)
}

// Row is the result of QueryRowContext. Errors are deferred until Scan.
type Row struct {
	row *sql.Row
	err error
}

// Scan copies the row into dest, or returns the error that prevented the query.
func (r *Row) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	return r.row.Scan(dest...)
}

func (r *Row) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.row.Err()
}

// QueryRowContext runs a query expected to return at most one row.
// Errors surface from Scan; only the round trip is logged here.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *Row {
	if db == nil || db.conn == nil {
		return &Row{err: ErrStorageUnavailable}
	}
	start := time.Now()
	row := db.conn.QueryRowContext(ctx, query, args...)
	logStatement(query, start, row.Err())
	return &Row{row: row}
}

// BeginTx starts a transaction whose statements are logged like the pool's.
func (db *DB) BeginTx(ctx context.Context) (*Tx, error) {
	if db == nil || db.conn == nil {
		return nil, ErrStorageUnavailable
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: beginning transaction: %w", ErrStorageError, err)
	}
	return &Tx{tx: tx}, nil
}

// Tx is a transaction with the same statement logging as DB.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if t == nil || t.tx == nil {
		return nil, ErrStorageUnavailable
	}
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	return rows, logStatement(query, start, err)
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if t == nil || t.tx == nil {
		return nil, ErrStorageUnavailable
	}
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	return res, logStatement(query, start, err)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *Row {
	if t == nil || t.tx == nil {
		return &Row{err: ErrStorageUnavailable}
	}
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	logStatement(query, start, row.Err())
	return &Row{row: row}
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback is a no-op after Commit.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// logStatement records the query and wraps driver failures in ErrStorageError.
// The driver error stays in the chain so callers can still inspect *pq.Error codes.
func logStatement(query string, start time.Time, err error) error {
	fields := map[string]interface{}{
		"query":    query,
		"duration": time.Since(start).String(),
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.LogDebug("Query returned no rows", fields)
			return err
		}
		if IsAlreadyExists(err) {
			utils.LogDebug("Schema object already exists", fields)
			return fmt.Errorf("%w: %w", ErrStorageError, err)
		}
		utils.LogError(err, "Query failed", fields)
		return fmt.Errorf("%w: %w", ErrStorageError, err)
	}
	utils.LogDebug("Query executed", fields)
	return nil
}
