// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/bakerycrew/crew-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, name, phone *string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Approve(ctx context.Context, id string) (*User, error)
	PromoteToManager(ctx context.Context, id string) (*User, error)
	DemoteToUser(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
}

const userColumns = `id, name, email, password_hash, phone, role, shift,
		       is_approved, manager_id, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts an unapproved user and links it to the first manager
// of its shift, if there is one.
func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, phone, role, shift, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, (
			SELECT id FROM users
			WHERE role = 'manager' AND shift = $7
			ORDER BY name ASC, id ASC
			LIMIT 1
		))
		RETURNING ` + userColumns

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.Shift,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	return getUser(ctx, r.db, "get user",
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return getUser(ctx, r.db, "get user by email",
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	id string,
	name, phone *string,
) (*User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    phone = COALESCE($3, phone),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return getUser(ctx, r.db, "update profile", query, id, name, phone)
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Approve(ctx context.Context, id string) (*User, error) {
	query := `
		UPDATE users
		SET is_approved = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return getUser(ctx, r.db, "approve user", query, id)
}

// PromoteToManager flips a user to manager. The new manager no longer
// reports to anyone and adopts the unassigned users of its shift.
func (r *repository) PromoteToManager(
	ctx context.Context,
	id string,
) (*User, error) {
	var promoted *User

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		promoted, err = getUser(ctx, tx, "promote user", `
			UPDATE users
			SET role = 'manager', manager_id = NULL, updated_at = NOW()
			WHERE id = $1 AND role = 'user'
			RETURNING `+userColumns, id)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET manager_id = $1, updated_at = NOW()
			WHERE role = 'user' AND shift = $2 AND manager_id IS NULL`,
			promoted.ID, promoted.Shift,
		)
		if err != nil {
			return fmt.Errorf("adopt unassigned users: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return promoted, nil
}

// DemoteToUser flips a manager to user. Everyone who reported to the
// demoted manager, and the demoted user itself, moves to the first
// remaining manager of the shift or to nobody.
func (r *repository) DemoteToUser(
	ctx context.Context,
	id string,
) (*User, error) {
	var demoted *User

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := getUser(ctx, tx, "demote user", `
			UPDATE users
			SET role = 'user', updated_at = NOW()
			WHERE id = $1 AND role = 'manager'
			RETURNING `+userColumns, id)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET manager_id = (
				SELECT id FROM users
				WHERE role = 'manager' AND shift = $2
				ORDER BY name ASC, id ASC
				LIMIT 1
			), updated_at = NOW()
			WHERE manager_id = $1 OR id = $1`,
			current.ID, current.Shift,
		)
		if err != nil {
			return fmt.Errorf("relink reports: %w", err)
		}

		demoted, err = getUser(ctx, tx, "demote user",
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return demoted, nil
}

// Delete removes the user and returns the row as it was. Messages,
// applications and owned records cascade; reports lose their manager.
func (r *repository) Delete(ctx context.Context, id string) (*User, error) {
	return getUser(ctx, r.db, "delete user",
		`DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	if params.Shift != "" {
		conditions = append(conditions, fmt.Sprintf("shift = $%d", argIdx))
		args = append(args, params.Shift)
		argIdx++
	}

	if params.Approved != nil {
		conditions = append(conditions, fmt.Sprintf("is_approved = $%d", argIdx))
		args = append(args, *params.Approved)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func getUser(
	ctx context.Context,
	db core.DBTX,
	op, query string,
	args ...any,
) (*User, error) {
	var user User
	err := db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) || core.IsInvalidTextError(err) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
