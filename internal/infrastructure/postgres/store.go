package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

// Store exposes the Postgres repositories over one connection manager.
type Store struct {
	db        *Manager
	users     *UserRepository
	brands    *BrandRepository
	vehicles  *VehicleRepository
	assets    *AssetRepository
	analytics *AnalyticsRepository
}

func NewStore(db *Manager) *Store {
	return &Store{
		db:        db,
		users:     NewUserRepository(db),
		brands:    NewBrandRepository(db),
		vehicles:  NewVehicleRepository(db),
		assets:    NewAssetRepository(db),
		analytics: NewAnalyticsRepository(db),
	}
}

func (s *Store) Users() repository.UserRepository          { return s.users }
func (s *Store) Brands() repository.BrandRepository        { return s.brands }
func (s *Store) Vehicles() repository.VehicleRepository    { return s.vehicles }
func (s *Store) Assets() repository.AssetRepository        { return s.assets }
func (s *Store) Analytics() repository.AnalyticsRepository { return s.analytics }
func (s *Store) Ping(ctx context.Context) error            { return s.db.Ping(ctx) }
func (s *Store) Close()                                    { s.db.Close() }

// Truncate removes every row; used by the seed command.
func (s *Store) Truncate(ctx context.Context) error {
	pool, err := s.db.Pool(ctx)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `TRUNCATE customization_assets, vehicles, brands, users`)
	return s.db.wrap(err)
}

var _ repository.Store = (*Store)(nil)

// RunMigrations applies pending migrations from migrationsDir using database/sql with pgx stdlib.
func RunMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
