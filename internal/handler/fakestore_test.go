package handler

import (
	"context"
	"sync"
	"time"

	"github.com/carspot/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeStore backs the auth, user and post services in router tests.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
	posts  map[int64]*model.Post
	likes  map[[2]int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[int64]*model.User{},
		posts: map[int64]*model.Post{},
		likes: map[[2]int64]bool{},
	}
}

func (f *fakeStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	f.nextID++
	created := *user
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.users[created.ID] = &created
	out := created
	return &out, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return f.findUser(func(u *model.User) bool { return u.Username == username })
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.findUser(func(u *model.User) bool { return u.Email == email })
}

func (f *fakeStore) findUser(match func(*model.User) bool) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) SearchUsers(ctx context.Context, filter model.UserSearchFilter) ([]model.UserSearchResult, error) {
	return []model.UserSearchResult{}, nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	return f.GetUserByID(ctx, id)
}

func (f *fakeStore) UpdateUserRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u.Role = role
	out := *u
	return &out, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) ListVisits(ctx context.Context, userID int64) ([]model.Visit, error) {
	return []model.Visit{}, nil
}

func (f *fakeStore) ListFeed(ctx context.Context) ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[id]; ok {
		out := *p
		return &out, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) CreatePost(ctx context.Context, authorID int64, req model.PostRequest) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := &model.Post{ID: f.nextID, AuthorID: authorID, Content: req.Content, LikerIDs: []int64{}}
	f.posts[p.ID] = p
	out := *p
	return &out, nil
}

func (f *fakeStore) DeletePost(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{postID, userID}
	if f.likes[key] {
		delete(f.likes, key)
		return false, nil
	}
	f.likes[key] = true
	return true, nil
}

func (f *fakeStore) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	return []model.Comment{}, nil
}

func (f *fakeStore) CreateComment(ctx context.Context, postID, authorID int64, content string) (*model.Comment, error) {
	return &model.Comment{ID: 1, PostID: postID, AuthorID: authorID, Content: content}, nil
}

func (f *fakeStore) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) DeleteComment(ctx context.Context, id int64) error {
	return pgx.ErrNoRows
}
