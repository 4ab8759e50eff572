package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

func NewPool(ctx context.Context, dsn string, maxConns, minConns int32, maxConnLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = maxConnLife
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Manager owns the process-wide pool: it connects on first use, hands the same
// pool to every caller afterwards and drops it after a connection failure so
// the next call reconnects.
type Manager struct {
	dsn         string
	maxConns    int32
	minConns    int32
	maxConnLife time.Duration
	logger      *logrus.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

func NewManager(dsn string, maxConns, minConns int32, maxConnLife time.Duration, logger *logrus.Logger) *Manager {
	return &Manager{
		dsn:         dsn,
		maxConns:    maxConns,
		minConns:    minConns,
		maxConnLife: maxConnLife,
		logger:      logger,
	}
}

// Pool returns the shared pool, connecting if needed.
// Connection failures are reported as repository.ErrUnavailable.
func (m *Manager) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool != nil {
		return m.pool, nil
	}
	pool, err := NewPool(ctx, m.dsn, m.maxConns, m.minConns, m.maxConnLife)
	if err != nil {
		if m.logger != nil {
			m.logger.WithError(err).Error("postgres connect failed")
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	if m.logger != nil {
		m.logger.Info("postgres connected")
	}
	m.pool = pool
	return pool, nil
}

// Ping establishes the pool if necessary and checks it is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	pool, err := m.Pool(ctx)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		return m.wrap(err)
	}
	return nil
}

// Reset closes the current pool; the next Pool call reconnects.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
		if m.logger != nil {
			m.logger.Warn("postgres pool reset")
		}
	}
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}
}

// wrap maps driver errors to repository errors and resets the pool on
// connection-class failures.
func (m *Manager) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		case "22P02": // invalid_text_representation, e.g. a malformed uuid
			return repository.ErrNotFound
		}
		return err
	}
	if isConnError(err) {
		m.Reset()
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return err
}

func isConnError(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

type scanner interface {
	Scan(dest ...any) error
}
