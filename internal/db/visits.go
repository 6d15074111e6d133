package db

import (
	"context"

	"github.com/carspot/backend/internal/model"
)

func (db *Postgres) RecordVisit(ctx context.Context, userID int64, ipAddress string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO profile_visits (user_id, ip_address, visited_at)
		VALUES ($1, $2, NOW())`, userID, ipAddress)
	return err
}

func (db *Postgres) ListVisits(ctx context.Context, userID int64) ([]model.Visit, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, ip_address, visited_at
		FROM profile_visits
		WHERE user_id = $1
		ORDER BY visited_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Visit{}
	for rows.Next() {
		var v model.Visit
		if err := rows.Scan(&v.ID, &v.UserID, &v.IPAddress, &v.VisitedAt); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
