package adapter

import (
	"context"
	"errors"

	"go-hrdesk/internal/infrastructure/database"
	directory "go-hrdesk/internal/pkg/directory/application/domain"
	repository "go-hrdesk/internal/pkg/directory/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = "id::text, first_name, last_name, role, email"

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

var _ repository.ProfileRepository = (*PgProfileRepository)(nil)

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (*directory.Profile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgProfileRepository: nil pool")
	}
	if !database.IsUUID(id) {
		return nil, nil
	}
	var p directory.Profile
	err := r.pool.QueryRow(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = $1::uuid", id,
	).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Role, &p.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgProfileRepository) GetByIDs(ctx context.Context, ids []string) ([]directory.Profile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgProfileRepository: nil pool")
	}
	if ids = database.UUIDs(ids); len(ids) == 0 {
		return []directory.Profile{}, nil
	}
	return r.query(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = ANY($1::uuid[])", ids)
}

func (r *PgProfileRepository) ListByRole(ctx context.Context, role directory.Role) ([]directory.Profile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgProfileRepository: nil pool")
	}
	return r.query(ctx, "SELECT "+profileColumns+" FROM profiles WHERE role = $1 ORDER BY last_name, first_name", string(role))
}

func (r *PgProfileRepository) List(ctx context.Context) ([]directory.Profile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgProfileRepository: nil pool")
	}
	return r.query(ctx, "SELECT "+profileColumns+" FROM profiles ORDER BY last_name, first_name")
}

func (r *PgProfileRepository) query(ctx context.Context, sql string, args ...any) ([]directory.Profile, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []directory.Profile{}
	for rows.Next() {
		var p directory.Profile
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Role, &p.Email); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return profiles, nil
}
