package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction(t *testing.T) {
	fnErr := errors.New("insert history failed")
	beginErr := errors.New("connection refused")
	commitErr := errors.New("commit failed")
	rollbackErr := errors.New("rollback failed")

	tests := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		fnErr  error
		check  func(t *testing.T, err error)
	}{
		{
			name:   "commits when fn succeeds",
			expect: func(m sqlmock.Sqlmock) { m.ExpectBegin(); m.ExpectCommit() },
			check:  func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:   "rolls back and returns fn error",
			expect: func(m sqlmock.Sqlmock) { m.ExpectBegin(); m.ExpectRollback() },
			fnErr:  fnErr,
			check:  func(t *testing.T, err error) { assert.Same(t, fnErr, err) },
		},
		{
			name:   "begin failure",
			expect: func(m sqlmock.Sqlmock) { m.ExpectBegin().WillReturnError(beginErr) },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, beginErr)
				assert.Contains(t, err.Error(), "begin transaction")
			},
		},
		{
			name:   "commit failure",
			expect: func(m sqlmock.Sqlmock) { m.ExpectBegin(); m.ExpectCommit().WillReturnError(commitErr) },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, commitErr)
				assert.Contains(t, err.Error(), "commit transaction")
			},
		},
		{
			name:   "rollback failure keeps the original error",
			expect: func(m sqlmock.Sqlmock) { m.ExpectBegin(); m.ExpectRollback().WillReturnError(rollbackErr) },
			fnErr:  fnErr,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, fnErr)
				assert.Contains(t, err.Error(), rollbackErr.Error())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.expect(mock)

			calls := 0
			err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
				calls++
				assert.NotNil(t, tx)
				return tt.fnErr
			})

			tt.check(t, err)
			assert.LessOrEqual(t, calls, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransactionRollsBackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
