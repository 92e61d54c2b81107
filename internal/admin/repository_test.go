// AngelaMos | 2026
// repository_test.go

package admin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerycrew/crew-backend/internal/admin"
)

func newMockRepo(t *testing.T) (admin.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return admin.NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestRepositoryCountByRole(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT role, COUNT\(\*\) AS count FROM users GROUP BY role`).
		WillReturnRows(sqlmock.NewRows([]string{"role", "count"}).
			AddRow("user", 7).
			AddRow("manager", 2))

	counts, err := repo.CountByRole(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"user": 7, "manager": 2}, counts)
}

func TestRepositoryShiftBreakdown(t *testing.T) {
	repo, mock := newMockRepo(t)
	cols := []string{"shift", "users", "managers", "pending", "unassigned"}

	mock.ExpectQuery(`FROM users\s+WHERE shift IS NOT NULL AND \(\$1 = '' OR shift = \$1\)\s+GROUP BY shift\s+ORDER BY shift`).
		WithArgs("2nd").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("2nd", 5, 1, 2, 1))
	mock.ExpectQuery(`FROM users`).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows(cols))

	shifts, err := repo.ShiftBreakdown(context.Background(), "2nd")
	require.NoError(t, err)
	assert.Equal(t, []admin.ShiftStats{
		{Shift: "2nd", Users: 5, Managers: 1, Pending: 2, Unassigned: 1},
	}, shifts)

	shifts, err = repo.ShiftBreakdown(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, shifts)
	assert.Empty(t, shifts)
}

func TestRepositoryEventAndDonationTotals(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM events e\s+LEFT JOIN`).
		WithArgs("1st").
		WillReturnRows(sqlmock.NewRows([]string{"active", "upcoming", "applications"}).
			AddRow(3, 2, 9))
	mock.ExpectQuery(`FROM donations`).
		WillReturnRows(sqlmock.NewRows([]string{"active", "expired", "total_collected"}).
			AddRow(2, 4, 87.25))

	events, err := repo.EventTotals(context.Background(), "1st")
	require.NoError(t, err)
	assert.Equal(t, admin.EventTotals{Active: 3, Upcoming: 2, Applications: 9}, events)

	donations, err := repo.DonationTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, donations.Expired)
	assert.InDelta(t, 87.25, donations.TotalCollected, 0.001)
}

func TestRepositoryTotalsWrapErrors(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`FROM donations`).WillReturnError(boom)

	_, err := repo.DonationTotals(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "donation totals")
}
