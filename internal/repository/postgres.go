package repository

import (
	"context"
	"fmt"

	"github.com/Abhinav-2002/Salaried/internal/config"
	"github.com/Abhinav-2002/Salaried/internal/model"
	"github.com/Abhinav-2002/Salaried/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// ErrDatabaseUnavailable is returned by the postgres store when no pool was configured.
var ErrDatabaseUnavailable = errors.New("database pool not initialized")

// Pool is the subset of *pgxpool.Pool the store uses.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// PostgresStore writes signups straight into a Postgres table.
type PostgresStore struct {
	pool  Pool
	query string
}

// NewPostgresStore prepares the insert statement for table.
func NewPostgresStore(pool Pool, table string) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		query: fmt.Sprintf(
			`INSERT INTO %s (name, email, gender, salary_min, city, ip, user_agent) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			pgx.Identifier{table}.Sanitize(),
		),
	}
}

func (s *PostgresStore) Backend() string {
	return config.BackendPostgres
}

func (s *PostgresStore) Check() error {
	if s.pool == nil {
		return ErrDatabaseUnavailable
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, signup *model.Signup) error {
	if err := s.Check(); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, s.query,
		signup.Name,
		signup.Email,
		signup.Gender,
		signup.SalaryMin,
		signup.City,
		signup.IP,
		signup.UserAgent,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return sqlerr.ConvertPgError(pgErr)
		}
		return errors.Wrap(err, "insert signup")
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.Check(); err != nil {
		return err
	}
	return s.pool.Ping(ctx)
}
