package postgres

import (
	"context"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

type AssetRepository struct {
	db *Manager
}

func NewAssetRepository(db *Manager) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id::text, name, category, description, price, image, compatibility::text[], created_at, updated_at`

func scanAsset(row scanner) (*entity.CustomizationAsset, error) {
	a := &entity.CustomizationAsset{}
	var category string
	err := row.Scan(&a.ID, &a.Name, &category, &a.Description, &a.Price, &a.Image, &a.Compatibility, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Category = entity.AssetCategory(category)
	return a, nil
}

func (r *AssetRepository) List(ctx context.Context, f repository.AssetFilter) ([]*entity.CustomizationAsset, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + assetColumns + ` FROM customization_assets`
	var args []any
	if f.Category != "" {
		query += ` WHERE category = $1`
		args = append(args, string(f.Category))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.db.wrap(err)
	}
	defer rows.Close()

	out := make([]*entity.CustomizationAsset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, r.db.wrap(err)
		}
		out = append(out, a)
	}
	return out, r.db.wrap(rows.Err())
}

func (r *AssetRepository) GetByID(ctx context.Context, id string) (*entity.CustomizationAsset, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	a, err := scanAsset(pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM customization_assets WHERE id = $1`, id))
	if err != nil {
		return nil, r.db.wrap(err)
	}
	return a, nil
}

func (r *AssetRepository) Create(ctx context.Context, a *entity.CustomizationAsset) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	row := pool.QueryRow(ctx, `
		INSERT INTO customization_assets (name, category, description, price, image, compatibility)
		VALUES ($1, $2, $3, $4, $5, CAST($6::text[] AS uuid[]))
		RETURNING id::text, created_at, updated_at
	`, a.Name, string(a.Category), a.Description, a.Price, a.Image, a.Compatibility)
	return r.db.wrap(row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AssetRepository) Update(ctx context.Context, a *entity.CustomizationAsset) error {
	if !validID(a.ID) {
		return repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	row := pool.QueryRow(ctx, `
		UPDATE customization_assets
		SET name = $1, category = $2, description = $3, price = $4, image = $5,
			compatibility = CAST($6::text[] AS uuid[]), updated_at = now()
		WHERE id = $7
		RETURNING created_at, updated_at
	`, a.Name, string(a.Category), a.Description, a.Price, a.Image, a.Compatibility, a.ID)
	return r.db.wrap(row.Scan(&a.CreatedAt, &a.UpdatedAt))
}

func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	res, err := pool.Exec(ctx, `DELETE FROM customization_assets WHERE id = $1`, id)
	if err != nil {
		return r.db.wrap(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AssetRepository = (*AssetRepository)(nil)
