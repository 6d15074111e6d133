package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/carspot/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, last_name, first_name, username, email, role, password_hash, public_view_token, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.LastName,
		&user.FirstName,
		&user.Username,
		&user.Email,
		&user.Role,
		&user.PasswordHash,
		&user.PublicViewToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (last_name, first_name, username, email, role, password_hash, public_view_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query,
		user.LastName,
		user.FirstName,
		user.Username,
		user.Email,
		user.Role,
		user.PasswordHash,
		user.PublicViewToken,
	))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByPublicToken(ctx context.Context, token string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE public_view_token = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, token))
}

func (db *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *user)
	}
	return list, rows.Err()
}

func (db *Postgres) SearchUsers(ctx context.Context, filter model.UserSearchFilter) ([]model.UserSearchResult, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Name != "" {
		args = append(args, containsPattern(filter.Name))
		conds = append(conds, fmt.Sprintf(`last_name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.Email != "" {
		args = append(args, containsPattern(filter.Email))
		conds = append(conds, fmt.Sprintf(`email ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := `SELECT id, last_name, email, created_at FROM users`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.UserSearchResult{}
	for rows.Next() {
		var r model.UserSearchResult
		if err := rows.Scan(&r.ID, &r.LastName, &r.Email, &r.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user input into a literal substring match for ILIKE.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// UpdateUser keeps the stored value for every empty field.
func (db *Postgres) UpdateUser(ctx context.Context, userID int64, req model.UpdateUserRequest) (*model.User, error) {
	query := `
		UPDATE users SET
			last_name = COALESCE(NULLIF($2, ''), last_name),
			first_name = COALESCE(NULLIF($3, ''), first_name),
			email = COALESCE(NULLIF($4, ''), email),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, userID, req.LastName, req.FirstName, req.Email))
}

func (db *Postgres) UpdateUserRole(ctx context.Context, userID int64, role model.Role) (*model.User, error) {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, userID, role))
}

func (db *Postgres) DeleteUser(ctx context.Context, userID int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
