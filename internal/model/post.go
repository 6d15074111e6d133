package model

import "time"

type AuthorSummary struct {
	ID        int64  `json:"id"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Username  string `json:"username,omitempty"`
}

type Post struct {
	ID        int64          `json:"id"`
	Content   string         `json:"content"`
	ImageURL  *string        `json:"imageUrl"`
	AuthorID  int64          `json:"UtilisateurID"`
	Author    *AuthorSummary `json:"Utilisateur,omitempty"`
	LikerIDs  []int64        `json:"Likers"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type PostRequest struct {
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"imageUrl" binding:"omitempty,url"`
}

type Comment struct {
	ID        int64          `json:"id"`
	Content   string         `json:"contenu"`
	PostID    int64          `json:"PostID"`
	AuthorID  int64          `json:"UtilisateurID"`
	Author    *AuthorSummary `json:"Utilisateur,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CommentRequest struct {
	Content string `json:"contenu" binding:"required"`
}
