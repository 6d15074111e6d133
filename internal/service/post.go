package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/carspot/backend/internal/model"
)

type postRepo interface {
	ListFeed(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	CreatePost(ctx context.Context, authorID int64, req model.PostRequest) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, postID, userID int64) (bool, error)
	ListComments(ctx context.Context, postID int64) ([]model.Comment, error)
	CreateComment(ctx context.Context, postID, authorID int64, content string) (*model.Comment, error)
	GetComment(ctx context.Context, id int64) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

type PostService struct {
	repo postRepo
}

func NewPostService(repo postRepo) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) Feed(ctx context.Context) ([]model.Post, error) {
	return s.repo.ListFeed(ctx)
}

func (s *PostService) Create(ctx context.Context, user *model.User, req model.PostRequest) (*model.Post, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	return s.repo.CreatePost(ctx, user.ID, req)
}

func (s *PostService) Delete(ctx context.Context, user *model.User, postID int64) error {
	if user == nil {
		return ErrUnauthenticated
	}
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return notFound(err, "post")
	}
	if err := RequireOwner(user, post.AuthorID); err != nil {
		return err
	}
	return notFound(s.repo.DeletePost(ctx, postID), "post")
}

func (s *PostService) ToggleLike(ctx context.Context, user *model.User, postID int64) (bool, error) {
	if user == nil {
		return false, ErrUnauthenticated
	}
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return false, notFound(err, "post")
	}
	return s.repo.ToggleLike(ctx, postID, user.ID)
}

func (s *PostService) Comments(ctx context.Context, postID int64) ([]model.Comment, error) {
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return nil, notFound(err, "post")
	}
	return s.repo.ListComments(ctx, postID)
}

func (s *PostService) AddComment(ctx context.Context, user *model.User, postID int64, content string) (*model.Comment, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: contenu is required", ErrInvalidInput)
	}
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return nil, notFound(err, "post")
	}
	return s.repo.CreateComment(ctx, postID, user.ID, content)
}

// DeleteComment requires the comment to belong to postID and to have been written by user.
func (s *PostService) DeleteComment(ctx context.Context, user *model.User, postID, commentID int64) error {
	if user == nil {
		return ErrUnauthenticated
	}
	comment, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return notFound(err, "comment")
	}
	if comment.PostID != postID {
		return fmt.Errorf("%w: comment", ErrNotFound)
	}
	if err := RequireOwner(user, comment.AuthorID); err != nil {
		return err
	}
	return notFound(s.repo.DeleteComment(ctx, commentID), "comment")
}
