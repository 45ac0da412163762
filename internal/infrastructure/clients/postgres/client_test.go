package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithConn_ReleasesConnectionOnEveryPath(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	client := NewClientFromDB(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err = client.WithConn(ctx, func(conn *sql.Conn) error { return boom })
	assert.ErrorIs(t, err, boom)

	assert.Panics(t, func() {
		_ = client.WithConn(ctx, func(conn *sql.Conn) error { panic("query exploded") })
	})

	// With a single-connection pool, a leaked connection would block here.
	err = client.WithConn(ctx, func(conn *sql.Conn) error { return conn.PingContext(ctx) })
	assert.NoError(t, err)
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestWithConn_AcquireFailure(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err = NewClientFromDB(db).WithConn(ctx, func(conn *sql.Conn) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestWithReadSnapshot_CommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectCommit()

	err = NewClientFromDB(db).WithReadSnapshot(context.Background(), func(tx *sql.Tx) error {
		var n int
		return tx.QueryRowContext(context.Background(), `SELECT 1`).Scan(&n)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithReadSnapshot_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = NewClientFromDB(db).WithReadSnapshot(context.Background(), func(tx *sql.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, db.Stats().InUse)
}
