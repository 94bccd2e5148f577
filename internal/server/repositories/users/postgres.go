package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/getcareer/portal/internal/common"
	"github.com/getcareer/portal/internal/dbx"
	"github.com/getcareer/portal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateIfAbsent relies on ON CONFLICT DO NOTHING so that two concurrent
// registrations of the same username cannot both succeed. There is no
// separate existence check before the insert.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {

	query :=
		`INSERT INTO userdata (username, password, role, join_date)
         VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.Role, user.JoinDate)

	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return inserted > 0, nil
}

func (r *PostgresRepository) FindByCredentials(ctx context.Context, username, digest string) (*models.User, error) {
	query :=
		`SELECT username, password, role, join_date FROM userdata
		 WHERE username = $1 AND password = $2
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username, digest).
		Scan(&user.Username, &user.PasswordHash, &user.Role, &user.JoinDate)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT username, role, join_date FROM userdata
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Role, &u.JoinDate); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func (r *PostgresRepository) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	query :=
		`SELECT role, count(*) FROM userdata
		 GROUP BY role
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Role]int64)
	for rows.Next() {
		var role models.Role
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		counts[role] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return counts, nil
}
