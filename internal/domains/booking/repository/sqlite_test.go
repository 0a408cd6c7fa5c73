package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/infras/otel/mocks"
	"clinicbook/infras/sqlite"
	"clinicbook/internal/domains/booking/model"
	"clinicbook/internal/domains/booking/model/dto"
	"clinicbook/internal/domains/booking/repository"
	gDto "clinicbook/shared/dto"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS bookings (
    id         TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL,
    email      TEXT NOT NULL,
    phone      TEXT NOT NULL,
    service    TEXT NOT NULL,
    slot_date  TEXT NOT NULL,
    slot_time  TEXT NOT NULL,
    notes      TEXT NOT NULL DEFAULT '',
    price      TEXT NOT NULL DEFAULT '',
    status     TEXT NOT NULL DEFAULT 'confirmed',
    created_at TIMESTAMP NOT NULL,
    UNIQUE (slot_date, slot_time)
);
`

func newSQLiteRepo(t *testing.T) repository.Booking {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.SetMaxOpenConns(1)
	db.MustExec(testSchema)

	return repository.NewSQLite(&sqlite.Connection{DB: db}, mocks.NewOtel())
}

func sqliteBooking(id, date, timeLabel string, createdAt time.Time) model.Booking {
	return model.Booking{
		ID:        id,
		FirstName: "Anna",
		LastName:  "Petrova",
		Email:     "anna@example.com",
		Phone:     "+49151000001",
		Service:   "Consultation",
		SlotDate:  date,
		SlotTime:  timeLabel,
		Status:    model.StatusConfirmed,
		CreatedAt: createdAt,
	}
}

func TestSQLiteRepository_InsertAndList(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, sqliteBooking("b-1", "2026-09-01", "10:00", base)))
	require.NoError(t, repo.Insert(ctx, sqliteBooking("b-2", "2026-09-01", "11:00", base.Add(time.Minute))))
	require.NoError(t, repo.Insert(ctx, sqliteBooking("b-3", "2026-09-02", "10:00", base.Add(2*time.Minute))))

	bookings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 3)

	// Newest first.
	assert.Equal(t, "b-3", bookings[0].ID)
	assert.Equal(t, "b-1", bookings[2].ID)

	byDate, err := repo.ListByDate(ctx, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "10:00", byDate[0].SlotTime)
	assert.Equal(t, "11:00", byDate[1].SlotTime)
}

func TestSQLiteRepository_SlotUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	now := time.Now()

	require.NoError(t, repo.Insert(ctx, sqliteBooking("b-1", "2026-09-01", "10:00", now)))

	taken, err := repo.Exists(ctx, "2026-09-01", "10:00")
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.Exists(ctx, "2026-09-01", "11:00")
	require.NoError(t, err)
	assert.False(t, free)

	// Same slot, different client: the unique constraint must reject it.
	dup := sqliteBooking("b-2", "2026-09-01", "10:00", now)
	dup.Email = "boris@example.com"

	err = repo.Insert(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	require.NoError(t, repo.Insert(ctx, sqliteBooking("b-1", "2026-09-01", "10:00", time.Now())))

	deleted, err := repo.Delete(ctx, "b-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "b-1")
	require.NoError(t, err)
	assert.False(t, deleted)

	// The freed slot can be rebooked.
	require.NoError(t, repo.Insert(ctx, sqliteBooking("b-2", "2026-09-01", "10:00", time.Now())))
}

func TestSQLiteRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	anna := sqliteBooking("b-1", "2026-09-01", "10:00", base)
	boris := sqliteBooking("b-2", "2026-09-01", "11:00", base.Add(time.Minute))
	boris.FirstName = "Boris"
	boris.Email = "boris@example.com"
	cancelled := sqliteBooking("b-3", "2026-09-02", "10:00", base.Add(2*time.Minute))
	cancelled.Status = model.StatusCancelled

	require.NoError(t, repo.Insert(ctx, anna))
	require.NoError(t, repo.Insert(ctx, boris))
	require.NoError(t, repo.Insert(ctx, cancelled))

	tests := []struct {
		name      string
		req       dto.SearchBookingsRequest
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "by text",
			req:       dto.SearchBookingsRequest{Text: "boris"},
			wantIDs:   []string{"b-2"},
			wantTotal: 1,
		},
		{
			name:      "by date",
			req:       dto.SearchBookingsRequest{Date: "2026-09-01"},
			wantIDs:   []string{"b-2", "b-1"},
			wantTotal: 2,
		},
		{
			name:      "by status",
			req:       dto.SearchBookingsRequest{Status: model.StatusCancelled},
			wantIDs:   []string{"b-3"},
			wantTotal: 1,
		},
		{
			name: "paginated",
			req: dto.SearchBookingsRequest{
				Params: gDto.QueryParams{Page: 2, Limit: 2},
			},
			wantIDs:   []string{"b-1"},
			wantTotal: 3,
		},
		{
			name: "sorted by slot time ascending",
			req: dto.SearchBookingsRequest{
				Date:   "2026-09-01",
				Params: gDto.QueryParams{SortBy: model.FieldSlotTime, SortDir: gDto.SortDirAsc},
			},
			wantIDs:   []string{"b-1", "b-2"},
			wantTotal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, total, err := repo.Search(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)

			ids := make([]string, len(bookings))
			for i, booking := range bookings {
				ids[i] = booking.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSQLiteRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	past := sqliteBooking("b-1", "2000-01-01", "10:00", time.Now())
	future := sqliteBooking("b-2", "2999-01-01", "10:00", time.Now())
	cancelled := sqliteBooking("b-3", "2999-01-02", "10:00", time.Now())
	cancelled.Status = model.StatusCancelled

	require.NoError(t, repo.Insert(ctx, past))
	require.NoError(t, repo.Insert(ctx, future))
	require.NoError(t, repo.Insert(ctx, cancelled))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Upcoming)
	assert.Equal(t, 3, stats.Dates)
	assert.Equal(t, 2, stats.ByStatus[model.StatusConfirmed])
	assert.Equal(t, 1, stats.ByStatus[model.StatusCancelled])
}
