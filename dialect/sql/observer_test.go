package sql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facetdb/facet/dialect"
)

func observedDriver(t *testing.T, opts ...ObserverOption) (*ObserverDriver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewObserverDriver(OpenDB(dialect.MySQL, db), opts...), mock
}

func TestObserverStats(t *testing.T) {
	drv, mock := observedDriver(t)

	mock.ExpectQuery("SELECT \\* FROM Artist").
		WillReturnRows(sqlmock.NewRows([]string{"ArtistId"}).AddRow(1))
	mock.ExpectExec("TRUNCATE TABLE Playlist").WillReturnResult(sqlmock.NewResult(0, 0))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT * FROM Artist", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, drv.Exec(context.Background(), "TRUNCATE TABLE Playlist", []any{}, nil))

	stats := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.TotalExecs)
	assert.Equal(t, int64(0), stats.Errors)
	assert.Greater(t, stats.TotalDuration, time.Duration(0))
	assert.Greater(t, stats.AvgDuration(), time.Duration(0))

	drv.QueryStats().Reset()
	stats = drv.QueryStats().Stats()
	assert.Zero(t, stats.TotalQueries)
	assert.Zero(t, stats.TotalExecs)
	assert.Zero(t, stats.AvgDuration())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObserverErrorCount(t *testing.T) {
	drv, mock := observedDriver(t)
	mock.ExpectQuery("SELECT \\* FROM Missing").WillReturnError(assert.AnError)

	rows := &Rows{}
	err := drv.Query(context.Background(), "SELECT * FROM Missing", []any{}, rows)
	require.Error(t, err)
	assert.Equal(t, int64(1), drv.QueryStats().Stats().Errors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObserverHooks(t *testing.T) {
	var events []Event
	drv, mock := observedDriver(t, WithHook(func(_ context.Context, ev Event) {
		events = append(events, ev)
	}))

	mock.ExpectQuery("SELECT \\* FROM Album WHERE AlbumId = \\?").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"AlbumId"}).AddRow(9))
	mock.ExpectExec("DELETE FROM InvoiceLine").
		WithArgs(7).
		WillReturnError(assert.AnError)

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT * FROM Album WHERE AlbumId = ?", []any{9}, rows))
	require.NoError(t, rows.Close())
	require.Error(t, drv.Exec(context.Background(), "DELETE FROM InvoiceLine WHERE InvoiceId = ?", []any{7}, nil))

	require.Len(t, events, 2)
	assert.Equal(t, "query", events[0].Op)
	assert.Equal(t, "SELECT * FROM Album WHERE AlbumId = ?", events[0].Statement)
	assert.Equal(t, []any{9}, events[0].Args)
	assert.NoError(t, events[0].Err)
	assert.Equal(t, "exec", events[1].Op)
	assert.Error(t, events[1].Err)
	// Every execution gets its own correlation id.
	assert.NotEqual(t, uuid.Nil, events[0].ID)
	assert.NotEqual(t, uuid.Nil, events[1].ID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObserverSlowQuery(t *testing.T) {
	var slow []string
	drv, mock := observedDriver(t,
		WithSlowThreshold(time.Nanosecond),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, d time.Duration) {
			slow = append(slow, query)
		}),
	)

	mock.ExpectQuery("SELECT \\* FROM Track").
		WillReturnRows(sqlmock.NewRows([]string{"TrackId"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT * FROM Track", []any{}, rows))
	require.NoError(t, rows.Close())

	require.Len(t, slow, 1)
	assert.Equal(t, "SELECT * FROM Track", slow[0])
	assert.Equal(t, int64(1), drv.QueryStats().Stats().SlowQueries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObserverSlowThreshold(t *testing.T) {
	drv, _ := observedDriver(t)
	assert.Equal(t, 100*time.Millisecond, drv.SlowThreshold())
	drv.SetSlowThreshold(time.Second)
	assert.Equal(t, time.Second, drv.SlowThreshold())
}

func TestObserverTx(t *testing.T) {
	drv, mock := observedDriver(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE Customer SET City = \\?").
		WithArgs("Oslo", 12).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "UPDATE Customer SET City = ? WHERE CustomerId = ?", []any{"Oslo", 12}, nil))
	require.NoError(t, tx.Commit())

	assert.Equal(t, int64(1), drv.QueryStats().Stats().TotalExecs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsSnapshotString(t *testing.T) {
	s := StatsSnapshot{
		TotalQueries:  3,
		TotalExecs:    1,
		TotalDuration: 4 * time.Millisecond,
		SlowQueries:   1,
		Errors:        2,
	}
	assert.Equal(t, "queries=3 execs=1 duration=4ms avg=1ms slow=1 errors=2", s.String())
}
