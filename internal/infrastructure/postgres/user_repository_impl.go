package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/entity"
	"github.com/revuehub/api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, first_name, last_name, bio, role, is_superuser, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.Bio, &u.Role, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, first_name, last_name, bio, role, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.FirstName, u.LastName, u.Bio, u.Role, u.IsSuperuser)

	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if violatesUnique(err, "users_username_key") {
		return apperr.Validation("username already taken")
	}
	if violatesUnique(err, "users_email_key") {
		return apperr.Validation("email already registered")
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) List(ctx context.Context, search string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE $1 = '' OR username ILIKE '%' || $1 || '%'
		ORDER BY username
	`, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u := entity.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.Bio, &u.Role, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4,
		    bio = $5, role = $6, is_superuser = $7, updated_at = $8
		WHERE id = $9
	`, u.Username, u.Email, u.FirstName, u.LastName, u.Bio, u.Role, u.IsSuperuser, u.UpdatedAt, u.ID)
	if violatesUnique(err, "users_username_key") {
		return apperr.Validation("username already taken")
	}
	if violatesUnique(err, "users_email_key") {
		return apperr.Validation("email already registered")
	}
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (r *UserRepository) UpsertVerification(ctx context.Context, userID, code string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO email_verifications (user_id, confirmation_code)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET confirmation_code = EXCLUDED.confirmation_code, updated_at = now()
	`, userID, code)
	return err
}

func (r *UserRepository) GetVerification(ctx context.Context, userID string) (*entity.EmailVerification, error) {
	v := &entity.EmailVerification{}
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, confirmation_code, created_at, updated_at
		FROM email_verifications
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&v.UserID, &v.ConfirmationCode, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("verification record")
		}
		return nil, err
	}
	return v, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
