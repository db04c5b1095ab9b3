package sequence_test

import (
	"context"
	"errors"
	"hostel/infras/otel/mocks"
	"hostel/shared/sequence"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingSource = sequence.Source{Prefix: "BK", Table: "bookings", Column: "id"}

var (
	incrementQuery = regexp.QuoteMeta(`UPDATE id_sequences SET value = value + 1 WHERE prefix = $1 RETURNING value`)
	existingQuery  = regexp.QuoteMeta(`SELECT id FROM bookings WHERE id LIKE $1`)
	seedQuery      = regexp.QuoteMeta(`INSERT INTO id_sequences (prefix, value) VALUES ($1, $2)`)
)

func beginTx(t *testing.T) (*sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()

	tx, err := sqlx.NewDb(db, "postgres").Beginx()
	require.NoError(t, err)

	return tx, mock
}

func TestGenerator_Next(t *testing.T) {
	errDB := errors.New("connection reset")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    string
		wantErr   error
	}{
		{
			name: "existing counter is incremented",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(incrementQuery).
					WithArgs("BK").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(8))
			},
			wantID: "BK8",
		},
		{
			name: "missing counter is seeded from existing ids",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(incrementQuery).
					WithArgs("BK").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
				mock.ExpectQuery(existingQuery).
					WithArgs("BK%").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).
						AddRow("BK1").
						AddRow("BK3").
						AddRow("BK7").
						AddRow("BKjunk"))
				mock.ExpectQuery(seedQuery).
					WithArgs("BK", int64(8)).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(8))
			},
			wantID: "BK8",
		},
		{
			name: "concurrent seeder wins and the counter moves past it",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(incrementQuery).
					WithArgs("BK").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
				mock.ExpectQuery(existingQuery).
					WithArgs("BK%").
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectQuery(seedQuery).
					WithArgs("BK", int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(2))
			},
			wantID: "BK2",
		},
		{
			name: "increment failure is returned",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(incrementQuery).
					WithArgs("BK").
					WillReturnError(errDB)
			},
			wantErr: errDB,
		},
		{
			name: "scan failure is returned",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(incrementQuery).
					WithArgs("BK").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
				mock.ExpectQuery(existingQuery).
					WithArgs("BK%").
					WillReturnError(errDB)
			},
			wantErr: errDB,
		},
		{
			name: "seed failure is returned",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(incrementQuery).
					WithArgs("BK").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
				mock.ExpectQuery(existingQuery).
					WithArgs("BK%").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("BK4"))
				mock.ExpectQuery(seedQuery).
					WithArgs("BK", int64(5)).
					WillReturnError(errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, mock := beginTx(t)
			tt.setupMock(mock)

			id, err := sequence.New(mocks.NewOtel()).Next(context.Background(), tx, bookingSource)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "BK")
				assert.Empty(t, id)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGenerator_NextTracesReturnedError(t *testing.T) {
	errDB := errors.New("connection reset")

	t.Run("failure reaches the span", func(t *testing.T) {
		tx, mock := beginTx(t)
		mock.ExpectQuery(incrementQuery).
			WithArgs("BK").
			WillReturnError(errDB)

		recorder := mocks.NewRecorder()

		_, err := sequence.New(recorder).Next(context.Background(), tx, bookingSource)

		require.Error(t, err)
		require.Len(t, recorder.Errors(), 1)
		assert.ErrorIs(t, recorder.Errors()[0], errDB)
	})

	t.Run("success traces nothing", func(t *testing.T) {
		tx, mock := beginTx(t)
		mock.ExpectQuery(incrementQuery).
			WithArgs("BK").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(3))

		recorder := mocks.NewRecorder()

		id, err := sequence.New(recorder).Next(context.Background(), tx, bookingSource)

		require.NoError(t, err)
		assert.Equal(t, "BK3", id)
		assert.Empty(t, recorder.Errors())
	})
}
