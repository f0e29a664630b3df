package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailops/store-console/internal/core/domain"
)

const uniqueViolation = "23505"

type PersonRepository struct {
	pool *pgxpool.Pool
}

func NewPersonRepository(pool *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{pool: pool}
}

func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	sql := `
		INSERT INTO persons (first_name, last_name, email, phone, password_hash, salt, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING person_id, created_at`

	created := *person
	err := r.pool.QueryRow(ctx, sql,
		person.FirstName,
		person.LastName,
		person.Email,
		person.Phone,
		person.PasswordHash,
		person.Salt,
		person.Role,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert person: %w", err)
	}
	return &created, nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	return r.findOne(ctx, `WHERE person_id = $1`, id)
}

func (r *PersonRepository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *PersonRepository) findOne(ctx context.Context, where string, arg any) (*domain.Person, error) {
	sql := `
		SELECT person_id, first_name, last_name, email, phone, password_hash, salt, role, created_at
		FROM persons ` + where

	var p domain.Person
	err := r.pool.QueryRow(ctx, sql, arg).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.PasswordHash,
		&p.Salt,
		&p.Role,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return &p, nil
}

func (r *PersonRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM persons WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func (r *PersonRepository) UpdateCredentials(ctx context.Context, email, passwordHash, salt string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE persons SET password_hash = $1, salt = $2 WHERE email = $3`,
		passwordHash, salt, email)
	if err != nil {
		return fmt.Errorf("update credentials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}
