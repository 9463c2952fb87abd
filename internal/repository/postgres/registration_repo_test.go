package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"webinarbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations \(event_id, user_id, created_at, updated_at\)`).
					WithArgs("ev-1", "user-1", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rg-uuid-1"))
			},
			wantID: "rg-uuid-1",
		},
		{
			name: "duplicate registration",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "event_registrations_event_user_key"})
			},
			wantErr: domain.ErrAlreadyRegistered,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			reg := domain.NewRegistration("ev-1", "user-1", created, created)
			err = repo.Create(ctx, reg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, reg.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	columns := []string{"id", "event_id", "user_id", "created_at", "updated_at"}

	t.Run("returns registrations in order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, user_id, created_at, updated_at`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("rg-1", "ev-1", "user-1", created, created).
				AddRow("rg-2", "ev-1", "user-2", created.Add(time.Minute), created.Add(time.Minute)))

		repo := NewRegistrationRepository(db)
		regs, err := repo.ListByEventID(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, regs, 2)
		require.Equal(t, "rg-1", regs[0].ID)
		require.Equal(t, "user-2", regs[1].UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no registrations yields empty non-nil slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, user_id, created_at, updated_at`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(columns))

		repo := NewRegistrationRepository(db)
		regs, err := repo.ListByEventID(ctx, "ev-1")
		require.NoError(t, err)
		require.NotNil(t, regs)
		require.Empty(t, regs)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, user_id, created_at, updated_at`).
			WithArgs("ev-1").
			WillReturnError(sql.ErrConnDone)

		repo := NewRegistrationRepository(db)
		_, err = repo.ListByEventID(ctx, "ev-1")
		require.Error(t, err)
	})
}
