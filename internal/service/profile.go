package service

import (
	"context"
	"log"
	"strings"

	"github.com/carspot/backend/internal/model"
)

type profileRepo interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByPublicToken(ctx context.Context, token string) (*model.User, error)
	ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]model.Vehicle, error)
	RecordVisit(ctx context.Context, userID int64, ipAddress string) error
}

// ProfileService serves the public, QR-code reachable view of a user.
type ProfileService struct {
	repo    profileRepo
	baseURL string
}

func NewProfileService(repo profileRepo, publicBaseURL string) *ProfileService {
	return &ProfileService{repo: repo, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *ProfileService) QRCode(ctx context.Context, userID int64) (*model.QRCodeResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &model.QRCodeResponse{
		UserID:          user.ID,
		PublicViewToken: user.PublicViewToken,
		ProfileURL:      s.baseURL + "/public/" + user.PublicViewToken,
	}, nil
}

// PublicProfile resolves a view token and records the visit. A failed visit insert
// does not fail the request.
func (s *ProfileService) PublicProfile(ctx context.Context, token, ipAddress string) (*model.PublicProfile, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotFound
	}
	user, err := s.repo.GetUserByPublicToken(ctx, token)
	if err != nil {
		return nil, notFound(err, "profile")
	}

	vehicles, err := s.repo.ListVehiclesByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RecordVisit(ctx, user.ID, ipAddress); err != nil {
		log.Printf("[Profile] Failed to record visit (user_id=%d): %v", user.ID, err)
	}

	return &model.PublicProfile{
		Username:  user.Username,
		LastName:  user.LastName,
		FirstName: user.FirstName,
		Vehicles:  vehicles,
	}, nil
}
