// AngelaMos | 2026
// repository_test.go

package donation_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/donation"
)

func newMockRepo(t *testing.T) (donation.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return donation.NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestRepositoryExpireOverdue(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`SET status = 'expired'\s+WHERE status = 'active' AND deadline < CURRENT_DATE`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRepositoryContribute(t *testing.T) {
	repo, mock := newMockRepo(t)
	cols := []string{"id", "donation_id", "user_id", "amount", "donated_at"}

	mock.ExpectQuery(`ON CONFLICT \(donation_id, user_id\) DO NOTHING`).
		WithArgs("c1", "d1", "u1", 12.5).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c1", "d1", "u1", 12.5, time.Now()))
	mock.ExpectQuery(`INSERT INTO donation_applications`).
		WithArgs("c2", "d1", "u1", 3.0).
		WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectQuery(`INSERT INTO donation_applications`).
		WithArgs("c3", "gone", "u1", 3.0).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	c := &donation.Contribution{ID: "c1", DonationID: "d1", UserID: "u1", Amount: 12.5}
	require.NoError(t, repo.Contribute(context.Background(), c))
	assert.False(t, c.DonatedAt.IsZero())

	err := repo.Contribute(context.Background(), &donation.Contribution{ID: "c2", DonationID: "d1", UserID: "u1", Amount: 3})
	assert.ErrorIs(t, err, core.ErrConflict)

	err = repo.Contribute(context.Background(), &donation.Contribution{ID: "c3", DonationID: "gone", UserID: "u1", Amount: 3})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryListAllFilters(t *testing.T) {
	repo, mock := newMockRepo(t)
	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE TRUE AND d.status = \$2 AND d.created_at >= \$3\s+GROUP BY d.id, u.name\s+` +
		`ORDER BY d.deadline ASC NULLS LAST, d.created_at ASC`).
		WithArgs("u1", "expired", after).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "deadline", "status", "created_by",
			"created_at", "creator_name", "total_collected", "donor_count", "has_donated",
		}).AddRow("d1", "Flowers", "For Sam", nil, "expired", "m1", time.Now(), "Maria", 40.0, 3, false))

	overviews, err := repo.ListAll(context.Background(), "u1", donation.ListFilter{
		Status:       "expired",
		CreatedAfter: &after,
	})
	require.NoError(t, err)
	require.Len(t, overviews, 1)
	assert.Equal(t, 3, overviews[0].DonorCount)
	assert.Nil(t, overviews[0].Deadline)
}

func TestRepositoryListActiveOrdersByDeadline(t *testing.T) {
	repo, mock := newMockRepo(t)
	deadline := time.Date(2099, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE d.status = 'active'\s+ORDER BY d.deadline ASC NULLS LAST, d.created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "deadline", "status",
			"created_by", "created_at", "creator_name",
		}).
			AddRow("d1", "Cake", "For Jo", deadline, "active", "m1", time.Now(), "Maria").
			AddRow("d2", "Flowers", "For Sam", nil, "active", "m1", time.Now(), "Maria"))

	summaries, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Maria", summaries[0].CreatorName)
	assert.Nil(t, summaries[1].Deadline)
}

func TestRepositoryOverviewAndDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`WHERE d.id = \$2`).
		WithArgs("u1", "bogus").
		WillReturnError(&pgconn.PgError{Code: "22P02"})
	mock.ExpectExec(`DELETE FROM donations WHERE id = \$1`).
		WithArgs("d9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.GetOverview(context.Background(), "bogus", "u1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), "d9"), core.ErrNotFound)
}
