package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/carspot/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is an in-memory stand-in for db.Postgres.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*model.User
	vehicles map[int64]*model.Vehicle
	images   map[int64]*model.VehicleImage
	posts    map[int64]*model.Post
	likes    map[[2]int64]bool
	comments map[int64]*model.Comment
	visits   []model.Visit

	byIDCalls int
	visitErr  error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*model.User{},
		vehicles: map[int64]*model.Vehicle{},
		images:   map[int64]*model.VehicleImage{},
		posts:    map[int64]*model.Post{},
		likes:    map[[2]int64]bool{},
		comments: map[int64]*model.Comment{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func duplicate() error {
	return &pgconn.PgError{Code: "23505"}
}

func (m *memStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, duplicate()
		}
	}
	created := *user
	created.ID = m.id()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.users[created.ID] = &created
	out := created
	return &out, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byIDCalls++
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *u
	return &out, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.findUser(func(u *model.User) bool { return u.Username == username })
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findUser(func(u *model.User) bool { return u.Email == email })
}

func (m *memStore) findUser(match func(*model.User) bool) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) GetUserByPublicToken(ctx context.Context, token string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.PublicViewToken == token {
			out := *u
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) ListUsers(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memStore) SearchUsers(ctx context.Context, filter model.UserSearchFilter) ([]model.UserSearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.UserSearchResult{}
	for _, u := range m.users {
		if filter.Name != "" && !strings.Contains(strings.ToLower(u.LastName), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(filter.Email)) {
			continue
		}
		if filter.CreatedAfter != nil && u.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		out = append(out, model.UserSearchResult{ID: u.ID, LastName: u.LastName, Email: u.Email, CreatedAt: u.CreatedAt})
	}
	return out, nil
}

func (m *memStore) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	out := *u
	return &out, nil
}

func (m *memStore) UpdateUserRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u.Role = role
	out := *u
	return &out, nil
}

func (m *memStore) DeleteUser(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Vehicle{}
	for _, v := range m.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (m *memStore) ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Vehicle{}
	for _, v := range m.vehicles {
		if v.OwnerID == ownerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *memStore) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *v
	return &out, nil
}

func (m *memStore) CreateVehicle(ctx context.Context, ownerID int64, req model.VehicleRequest) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &model.Vehicle{
		ID:           m.id(),
		OwnerID:      ownerID,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Type:         req.Type,
		Color:        req.Color,
		EngineType:   req.EngineType,
		Power:        req.Power,
		Transmission: req.Transmission,
		Modification: req.Modification,
	}
	m.vehicles[v.ID] = v
	out := *v
	return &out, nil
}

func (m *memStore) UpdateVehicle(ctx context.Context, id int64, req model.VehicleRequest) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if req.Brand != "" {
		v.Brand = req.Brand
	}
	if req.Color != "" {
		v.Color = req.Color
	}
	if req.Power != 0 {
		v.Power = req.Power
	}
	out := *v
	return &out, nil
}

func (m *memStore) DeleteVehicle(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.vehicles, id)
	return nil
}

func (m *memStore) AddVehicleImages(ctx context.Context, vehicleID int64, images []model.VehicleImageInput) ([]model.VehicleImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.VehicleImage{}
	for _, in := range images {
		img := &model.VehicleImage{ID: m.id(), URL: in.URL, PublicID: in.PublicID, VehicleID: vehicleID}
		m.images[img.ID] = img
		out = append(out, *img)
	}
	return out, nil
}

func (m *memStore) GetVehicleImage(ctx context.Context, imageID int64) (*model.VehicleImage, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[imageID]
	if !ok {
		return nil, 0, pgx.ErrNoRows
	}
	v, ok := m.vehicles[img.VehicleID]
	if !ok {
		return nil, 0, pgx.ErrNoRows
	}
	out := *img
	return &out, v.OwnerID, nil
}

func (m *memStore) DeleteVehicleImage(ctx context.Context, imageID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.images[imageID]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.images, imageID)
	return nil
}

func (m *memStore) ListFeed(ctx context.Context) ([]model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Post{}
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memStore) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *p
	return &out, nil
}

func (m *memStore) CreatePost(ctx context.Context, authorID int64, req model.PostRequest) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &model.Post{ID: m.id(), AuthorID: authorID, Content: req.Content, ImageURL: req.ImageURL, LikerIDs: []int64{}}
	m.posts[p.ID] = p
	out := *p
	return &out, nil
}

func (m *memStore) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.posts, id)
	return nil
}

func (m *memStore) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{postID, userID}
	if m.likes[key] {
		delete(m.likes, key)
		return false, nil
	}
	m.likes[key] = true
	return true, nil
}

func (m *memStore) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) CreateComment(ctx context.Context, postID, authorID int64, content string) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &model.Comment{ID: m.id(), PostID: postID, AuthorID: authorID, Content: content}
	m.comments[c.ID] = c
	out := *c
	return &out, nil
}

func (m *memStore) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *c
	return &out, nil
}

func (m *memStore) DeleteComment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.comments, id)
	return nil
}

func (m *memStore) RecordVisit(ctx context.Context, userID int64, ipAddress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.visitErr != nil {
		return m.visitErr
	}
	m.visits = append(m.visits, model.Visit{ID: m.id(), UserID: userID, IPAddress: ipAddress, VisitedAt: time.Now()})
	return nil
}

func (m *memStore) ListVisits(ctx context.Context, userID int64) ([]model.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Visit{}
	for _, v := range m.visits {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}
