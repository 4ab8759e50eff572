package postgres

import (
	"context"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

type VehicleRepository struct {
	db *Manager
}

func NewVehicleRepository(db *Manager) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id::text, name, brand_id::text, vehicle_model, year, base_price, price, model_url,
	thumbnail, description, engine, horsepower, torque, acceleration, top_speed, specs,
	custom_model_url, customizations, created_at, updated_at`

func scanVehicle(row scanner) (*entity.Vehicle, error) {
	v := &entity.Vehicle{}
	err := row.Scan(
		&v.ID, &v.Name, &v.BrandID, &v.VehicleModel, &v.Year, &v.BasePrice, &v.Price, &v.ModelURL,
		&v.Thumbnail, &v.Description, &v.Engine, &v.Horsepower, &v.Torque, &v.Acceleration, &v.TopSpeed, &v.Specs,
		&v.CustomModelURL, &v.Customizations, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VehicleRepository) List(ctx context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	var args []any
	if f.BrandID != "" {
		if !validID(f.BrandID) {
			return []*entity.Vehicle{}, nil
		}
		query += ` WHERE brand_id = $1`
		args = append(args, f.BrandID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.db.wrap(err)
	}
	defer rows.Close()

	out := make([]*entity.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, r.db.wrap(err)
		}
		out = append(out, v)
	}
	return out, r.db.wrap(rows.Err())
}

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	v, err := scanVehicle(pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if err != nil {
		return nil, r.db.wrap(err)
	}
	return v, nil
}

func (r *VehicleRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Vehicle, error) {
	out := make(map[string]*entity.Vehicle)
	ids = validIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ANY(CAST($1::text[] AS uuid[]))`, ids)
	if err != nil {
		return nil, r.db.wrap(err)
	}
	defer rows.Close()
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, r.db.wrap(err)
		}
		out[v.ID] = v
	}
	return out, r.db.wrap(rows.Err())
}

func (r *VehicleRepository) Create(ctx context.Context, v *entity.Vehicle) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	row := pool.QueryRow(ctx, `
		INSERT INTO vehicles (name, brand_id, vehicle_model, year, base_price, price, model_url, thumbnail,
			description, engine, horsepower, torque, acceleration, top_speed, specs, custom_model_url, customizations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id::text, created_at, updated_at
	`, v.Name, v.BrandID, v.VehicleModel, v.Year, v.BasePrice, v.Price, v.ModelURL, v.Thumbnail,
		v.Description, v.Engine, v.Horsepower, v.Torque, v.Acceleration, v.TopSpeed, v.Specs, v.CustomModelURL, v.Customizations)
	return r.db.wrap(row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt))
}

func (r *VehicleRepository) Update(ctx context.Context, v *entity.Vehicle) error {
	if !validID(v.ID) {
		return repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	row := pool.QueryRow(ctx, `
		UPDATE vehicles
		SET name = $1, brand_id = $2, vehicle_model = $3, year = $4, base_price = $5, price = $6, model_url = $7,
			thumbnail = $8, description = $9, engine = $10, horsepower = $11, torque = $12, acceleration = $13,
			top_speed = $14, specs = $15, custom_model_url = $16, customizations = $17, updated_at = now()
		WHERE id = $18
		RETURNING created_at, updated_at
	`, v.Name, v.BrandID, v.VehicleModel, v.Year, v.BasePrice, v.Price, v.ModelURL,
		v.Thumbnail, v.Description, v.Engine, v.Horsepower, v.Torque, v.Acceleration,
		v.TopSpeed, v.Specs, v.CustomModelURL, v.Customizations, v.ID)
	return r.db.wrap(row.Scan(&v.CreatedAt, &v.UpdatedAt))
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	res, err := pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return r.db.wrap(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)
