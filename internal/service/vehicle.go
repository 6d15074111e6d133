package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/carspot/backend/internal/model"
)

type vehicleRepo interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error)
	CreateVehicle(ctx context.Context, ownerID int64, req model.VehicleRequest) (*model.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int64, req model.VehicleRequest) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
	AddVehicleImages(ctx context.Context, vehicleID int64, images []model.VehicleImageInput) ([]model.VehicleImage, error)
	GetVehicleImage(ctx context.Context, imageID int64) (*model.VehicleImage, int64, error)
	DeleteVehicleImage(ctx context.Context, imageID int64) error
}

type VehicleService struct {
	repo vehicleRepo
}

func NewVehicleService(repo vehicleRepo) *VehicleService {
	return &VehicleService{repo: repo}
}

func (s *VehicleService) List(ctx context.Context) ([]model.Vehicle, error) {
	return s.repo.ListVehicles(ctx)
}

func (s *VehicleService) ListMine(ctx context.Context, user *model.User) ([]model.Vehicle, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListVehiclesByOwner(ctx, user.ID)
}

func (s *VehicleService) Create(ctx context.Context, user *model.User, req model.VehicleRequest) (*model.Vehicle, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateVehicle(req); err != nil {
		return nil, err
	}
	return s.repo.CreateVehicle(ctx, user.ID, req)
}

func (s *VehicleService) Update(ctx context.Context, user *model.User, id int64, req model.VehicleRequest) (*model.Vehicle, error) {
	if err := s.authorize(ctx, user, id); err != nil {
		return nil, err
	}
	if req.Year < 0 || req.Power < 0 {
		return nil, fmt.Errorf("%w: annee and puissance must be positive", ErrInvalidInput)
	}
	vehicle, err := s.repo.UpdateVehicle(ctx, id, req)
	return vehicle, notFound(err, "vehicle")
}

func (s *VehicleService) Delete(ctx context.Context, user *model.User, id int64) error {
	if err := s.authorize(ctx, user, id); err != nil {
		return err
	}
	return notFound(s.repo.DeleteVehicle(ctx, id), "vehicle")
}

func (s *VehicleService) AddImages(ctx context.Context, user *model.User, vehicleID int64, images []model.VehicleImageInput) ([]model.VehicleImage, error) {
	if err := s.authorize(ctx, user, vehicleID); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	}
	return s.repo.AddVehicleImages(ctx, vehicleID, images)
}

func (s *VehicleService) DeleteImage(ctx context.Context, user *model.User, imageID int64) error {
	if user == nil {
		return ErrUnauthenticated
	}
	_, ownerID, err := s.repo.GetVehicleImage(ctx, imageID)
	if err != nil {
		return notFound(err, "vehicle image")
	}
	if err := RequireOwner(user, ownerID); err != nil {
		return err
	}
	return notFound(s.repo.DeleteVehicleImage(ctx, imageID), "vehicle image")
}

func (s *VehicleService) authorize(ctx context.Context, user *model.User, vehicleID int64) error {
	if user == nil {
		return ErrUnauthenticated
	}
	vehicle, err := s.repo.GetVehicle(ctx, vehicleID)
	if err != nil {
		return notFound(err, "vehicle")
	}
	return RequireOwner(user, vehicle.OwnerID)
}

func validateVehicle(req model.VehicleRequest) error {
	fields := []struct {
		name  string
		value string
	}{
		{"marque", req.Brand},
		{"modele", req.Model},
		{"type_de_vehicule", req.Type},
		{"couleur", req.Color},
		{"type_de_moteur", req.EngineType},
		{"transmission", req.Transmission},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if req.Year <= 0 {
		missing = append(missing, "annee")
	}
	if req.Power <= 0 {
		missing = append(missing, "puissance")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}
