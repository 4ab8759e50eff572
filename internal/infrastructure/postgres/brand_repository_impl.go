package postgres

import (
	"context"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

type BrandRepository struct {
	db *Manager
}

func NewBrandRepository(db *Manager) *BrandRepository {
	return &BrandRepository{db: db}
}

const brandColumns = `id::text, name, logo, description, founded, founded_year, country, created_at, updated_at`

func scanBrand(row scanner) (*entity.Brand, error) {
	b := &entity.Brand{}
	err := row.Scan(&b.ID, &b.Name, &b.Logo, &b.Description, &b.Founded, &b.FoundedYear, &b.Country, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BrandRepository) List(ctx context.Context) ([]*entity.Brand, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `SELECT `+brandColumns+` FROM brands ORDER BY created_at DESC`)
	if err != nil {
		return nil, r.db.wrap(err)
	}
	defer rows.Close()

	out := make([]*entity.Brand, 0)
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, r.db.wrap(err)
		}
		out = append(out, b)
	}
	return out, r.db.wrap(rows.Err())
}

func (r *BrandRepository) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	b, err := scanBrand(pool.QueryRow(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = $1`, id))
	if err != nil {
		return nil, r.db.wrap(err)
	}
	return b, nil
}

func (r *BrandRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Brand, error) {
	out := make(map[string]*entity.Brand)
	ids = validIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = ANY(CAST($1::text[] AS uuid[]))`, ids)
	if err != nil {
		return nil, r.db.wrap(err)
	}
	defer rows.Close()
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, r.db.wrap(err)
		}
		out[b.ID] = b
	}
	return out, r.db.wrap(rows.Err())
}

func (r *BrandRepository) GetByName(ctx context.Context, name string) (*entity.Brand, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	b, err := scanBrand(pool.QueryRow(ctx, `SELECT `+brandColumns+` FROM brands WHERE name = $1`, name))
	if err != nil {
		return nil, r.db.wrap(err)
	}
	return b, nil
}

func (r *BrandRepository) Create(ctx context.Context, b *entity.Brand) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	row := pool.QueryRow(ctx, `
		INSERT INTO brands (name, logo, description, founded, founded_year, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at, updated_at
	`, b.Name, b.Logo, b.Description, b.Founded, b.FoundedYear, b.Country)
	return r.db.wrap(row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt))
}

func (r *BrandRepository) Update(ctx context.Context, b *entity.Brand) error {
	if !validID(b.ID) {
		return repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	row := pool.QueryRow(ctx, `
		UPDATE brands
		SET name = $1, logo = $2, description = $3, founded = $4, founded_year = $5, country = $6, updated_at = now()
		WHERE id = $7
		RETURNING created_at, updated_at
	`, b.Name, b.Logo, b.Description, b.Founded, b.FoundedYear, b.Country, b.ID)
	return r.db.wrap(row.Scan(&b.CreatedAt, &b.UpdatedAt))
}

func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	res, err := pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return r.db.wrap(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BrandRepository = (*BrandRepository)(nil)
