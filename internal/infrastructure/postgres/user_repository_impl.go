package postgres

import (
	"context"
	"time"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

type UserRepository struct {
	db *Manager
}

func NewUserRepository(db *Manager) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id::text, email, password_hash, name, role, created_at, updated_at`

func scanUser(row scanner) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	row := pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at
	`, u.Email, u.PasswordHash, u.Name, string(u.Role))

	return r.db.wrap(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanUser(pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, r.db.wrap(err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanUser(pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, r.db.wrap(err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if !validID(u.ID) {
		return repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	u.UpdatedAt = time.Now()

	res, err := pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, role = $4, updated_at = $5
		WHERE id = $6
	`, u.Email, u.PasswordHash, u.Name, string(u.Role), u.UpdatedAt, u.ID)
	if err != nil {
		return r.db.wrap(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, r.db.wrap(err)
	}
	return n, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
