package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestOpenWithoutDSN(t *testing.T) {
	db, err := Open(context.Background(), "")
	assert.Nil(t, db)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestNilHandleIsUnavailable(t *testing.T) {
	var db *DB
	_, err := db.Execute(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = db.ExecContext(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	var id string
	row := db.QueryRowContext(context.Background(), "SELECT id FROM users")
	assert.ErrorIs(t, row.Err(), ErrStorageUnavailable)
	assert.ErrorIs(t, row.Scan(&id), ErrStorageUnavailable)
	assert.Empty(t, id)

	assert.ErrorIs(t, db.Ping(context.Background()), ErrStorageUnavailable)
	assert.NoError(t, db.Close())

	var tx *Tx
	_, err = tx.ExecContext(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	_, err = tx.QueryContext(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, tx.QueryRowContext(context.Background(), "SELECT 1").Scan(&id), ErrStorageUnavailable)
}

func TestIsAlreadyExists(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate table", &pq.Error{Code: "42P07"}, true},
		{"duplicate constraint", &pq.Error{Code: "42710"}, true},
		{"wrapped duplicate", fmt.Errorf("%w: %w", ErrStorageError, &pq.Error{Code: "42710"}), true},
		{"syntax error", &pq.Error{Code: "42601"}, false},
		{"check violation on existing rows", &pq.Error{Code: "23514"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAlreadyExists(tc.err))
		})
	}
}

func TestLogStatementWrapsDriverErrors(t *testing.T) {
	driverErr := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	err := logStatement("INSERT INTO users ...", time.Now(), driverErr)

	assert.ErrorIs(t, err, ErrStorageError)
	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "users_email_key", pqErr.Constraint)

	assert.NoError(t, logStatement("SELECT 1", time.Now(), nil))
}
