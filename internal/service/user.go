package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/carspot/backend/internal/db"
	"github.com/carspot/backend/internal/model"
)

type userRepo interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SearchUsers(ctx context.Context, filter model.UserSearchFilter) ([]model.UserSearchResult, error)
	UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error)
	UpdateUserRole(ctx context.Context, id int64, role model.Role) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListVisits(ctx context.Context, userID int64) ([]model.Visit, error)
}

type UserService struct {
	repo userRepo
}

func NewUserService(repo userRepo) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) Search(ctx context.Context, filter model.UserSearchFilter) ([]model.UserSearchResult, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Email = strings.TrimSpace(filter.Email)
	return s.repo.SearchUsers(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	return user, notFound(err, "user")
}

// Update is an admin operation; callers pass through RequireRole first.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	req.LastName = strings.TrimSpace(req.LastName)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.Email = strings.TrimSpace(req.Email)
	if req.LastName != "" && !lengthBetween(req.LastName, minNameLength, maxNameLength) {
		return nil, fmt.Errorf("%w: nom must be %d-%d characters", ErrInvalidInput, minNameLength, maxNameLength)
	}
	if req.FirstName != "" && !lengthBetween(req.FirstName, minNameLength, maxNameLength) {
		return nil, fmt.Errorf("%w: prenom must be %d-%d characters", ErrInvalidInput, minNameLength, maxNameLength)
	}

	user, err := s.repo.UpdateUser(ctx, id, req)
	if db.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: email already used", ErrConflict)
	}
	return user, notFound(err, "user")
}

func (s *UserService) SetRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be %s or %s", ErrInvalidInput, model.RoleAdmin, model.RoleUser)
	}
	user, err := s.repo.UpdateUserRole(ctx, id, role)
	return user, notFound(err, "user")
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return notFound(s.repo.DeleteUser(ctx, id), "user")
}

func (s *UserService) Visits(ctx context.Context, user *model.User) ([]model.Visit, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListVisits(ctx, user.ID)
}

// notFound maps a store no-rows error to ErrNotFound and passes everything else through.
func notFound(err error, what string) error {
	if err == nil {
		return nil
	}
	if db.IsNoRows(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
