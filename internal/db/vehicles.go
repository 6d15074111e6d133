package db

import (
	"context"

	"github.com/carspot/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const vehicleColumns = `id, owner_id, brand, model, year, vehicle_type, color, engine_type, power, transmission, modification, image_url`

func scanVehicle(row pgx.Row) (*model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Brand,
		&v.Model,
		&v.Year,
		&v.Type,
		&v.Color,
		&v.EngineType,
		&v.Power,
		&v.Transmission,
		&v.Modification,
		&v.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (db *Postgres) queryVehicles(ctx context.Context, query string, args ...any) ([]model.Vehicle, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Vehicle{}
	index := map[int64]int{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		index[v.ID] = len(list)
		list = append(list, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]int64, 0, len(list))
	for _, v := range list {
		ids = append(ids, v.ID)
	}
	imgRows, err := db.Pool.Query(ctx, `
		SELECT id, url, public_id, vehicle_id
		FROM vehicle_images
		WHERE vehicle_id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img model.VehicleImage
		if err := imgRows.Scan(&img.ID, &img.URL, &img.PublicID, &img.VehicleID); err != nil {
			return nil, err
		}
		if i, ok := index[img.VehicleID]; ok {
			list[i].Images = append(list[i].Images, img)
		}
	}
	return list, imgRows.Err()
}

func (db *Postgres) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return db.queryVehicles(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`)
}

func (db *Postgres) ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]model.Vehicle, error) {
	return db.queryVehicles(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE owner_id = $1 ORDER BY id`, ownerID)
}

func (db *Postgres) GetVehicle(ctx context.Context, vehicleID int64) (*model.Vehicle, error) {
	return scanVehicle(db.Pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, vehicleID))
}

func (db *Postgres) CreateVehicle(ctx context.Context, ownerID int64, req model.VehicleRequest) (*model.Vehicle, error) {
	query := `
		INSERT INTO vehicles (owner_id, brand, model, year, vehicle_type, color, engine_type, power, transmission, modification)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + vehicleColumns
	return scanVehicle(db.Pool.QueryRow(ctx, query,
		ownerID,
		req.Brand,
		req.Model,
		req.Year,
		req.Type,
		req.Color,
		req.EngineType,
		req.Power,
		req.Transmission,
		req.Modification,
	))
}

// UpdateVehicle keeps the stored value for every zero field.
func (db *Postgres) UpdateVehicle(ctx context.Context, vehicleID int64, req model.VehicleRequest) (*model.Vehicle, error) {
	query := `
		UPDATE vehicles SET
			brand = COALESCE(NULLIF($2, ''), brand),
			model = COALESCE(NULLIF($3, ''), model),
			year = COALESCE(NULLIF($4, 0), year),
			vehicle_type = COALESCE(NULLIF($5, ''), vehicle_type),
			color = COALESCE(NULLIF($6, ''), color),
			engine_type = COALESCE(NULLIF($7, ''), engine_type),
			power = COALESCE(NULLIF($8, 0), power),
			transmission = COALESCE(NULLIF($9, ''), transmission),
			modification = COALESCE(NULLIF($10, ''), modification),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + vehicleColumns
	return scanVehicle(db.Pool.QueryRow(ctx, query,
		vehicleID,
		req.Brand,
		req.Model,
		req.Year,
		req.Type,
		req.Color,
		req.EngineType,
		req.Power,
		req.Transmission,
		req.Modification,
	))
}

func (db *Postgres) DeleteVehicle(ctx context.Context, vehicleID int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, vehicleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddVehicleImages inserts all images in one transaction and sets the cover image
// when the vehicle has none yet.
func (db *Postgres) AddVehicleImages(ctx context.Context, vehicleID int64, images []model.VehicleImageInput) ([]model.VehicleImage, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	out := make([]model.VehicleImage, 0, len(images))
	for _, in := range images {
		img := model.VehicleImage{URL: in.URL, PublicID: in.PublicID, VehicleID: vehicleID}
		if err := tx.QueryRow(ctx, `
			INSERT INTO vehicle_images (vehicle_id, url, public_id)
			VALUES ($1, $2, $3)
			RETURNING id`, vehicleID, in.URL, in.PublicID).Scan(&img.ID); err != nil {
			return nil, err
		}
		out = append(out, img)
	}

	if len(out) > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE vehicles SET image_url = $2, updated_at = NOW()
			WHERE id = $1 AND image_url IS NULL`, vehicleID, out[0].URL); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVehicleImage returns the image together with the owner of its vehicle.
func (db *Postgres) GetVehicleImage(ctx context.Context, imageID int64) (*model.VehicleImage, int64, error) {
	var (
		img     model.VehicleImage
		ownerID int64
	)
	err := db.Pool.QueryRow(ctx, `
		SELECT i.id, i.url, i.public_id, i.vehicle_id, v.owner_id
		FROM vehicle_images i
		JOIN vehicles v ON v.id = i.vehicle_id
		WHERE i.id = $1`, imageID).Scan(&img.ID, &img.URL, &img.PublicID, &img.VehicleID, &ownerID)
	if err != nil {
		return nil, 0, err
	}
	return &img, ownerID, nil
}

func (db *Postgres) DeleteVehicleImage(ctx context.Context, imageID int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM vehicle_images WHERE id = $1`, imageID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
